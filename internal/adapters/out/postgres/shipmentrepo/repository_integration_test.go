package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(code string, weight string) *shipment.Shipment {
	c, err := shipment.NewCode(code)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewUUID(), c, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		decimal.RequireFromString(weight), "fragile", time.Now(), shipment.DefaultPricingPolicy())
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	ctx := context.Background()
	original := suite.newShipment("ENV1000000000001001", "2.5")

	suite.Require().NoError(suite.repository.Add(ctx, original))
	loaded, err := suite.repository.Get(ctx, original.ID())

	suite.Require().NoError(err)
	suite.Equal(original.ID(), loaded.ID())
	suite.Equal(original.Code().String(), loaded.Code().String())
	suite.Equal(original.CustomerID(), loaded.CustomerID())
	suite.Equal("2.50", loaded.Weight().StringFixed(2))
	suite.Equal("25.00", loaded.Price().StringFixed(2))
	suite.Equal(shipment.Created, loaded.Status())
	suite.True(original.CreatedAt().Equal(loaded.CreatedAt()))
	suite.True(original.EstimatedDelivery().Equal(loaded.EstimatedDelivery()))
	suite.Equal("fragile", loaded.Notes())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateCode_IsBusinessRuleViolation() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newShipment("ENV1000000000001002", "1")))

	err := suite.repository.Add(ctx, suite.newShipment("ENV1000000000001002", "1"))

	suite.Require().ErrorIs(err, errs.ErrBusinessRuleViolation)
	suite.Contains(err.Error(), services.ErrCodeGenerationExhausted.Rule)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByCode_AndExistsByCode() {
	ctx := context.Background()
	s := suite.newShipment("ENV1000000000001003", "1")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	loaded, err := suite.repository.GetByCode(ctx, s.Code())
	suite.Require().NoError(err)
	suite.Equal(s.ID(), loaded.ID())

	exists, err := suite.repository.ExistsByCode(ctx, s.Code())
	suite.Require().NoError(err)
	suite.True(exists)

	missing, _ := shipment.NewCode("ENV0")
	exists, err = suite.repository.ExistsByCode(ctx, missing)
	suite.Require().NoError(err)
	suite.False(exists)

	_, err = suite.repository.GetByCode(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_PersistsMutableFields() {
	ctx := context.Background()
	s := suite.newShipment("ENV1000000000001004", "1")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	newCustomer := kernel.NewUUID()
	suite.Require().NoError(s.Update(newCustomer, s.OriginID(), s.DestinationID(),
		decimal.RequireFromString("3.25"), "updated", shipment.DefaultPricingPolicy()))
	suite.Require().NoError(s.ChangeStatus(shipment.InTransit))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(newCustomer, loaded.CustomerID())
	suite.Equal("32.50", loaded.Price().StringFixed(2))
	suite.Equal(shipment.InTransit, loaded.Status())
	suite.Equal("updated", loaded.Notes())
	suite.Equal("ENV1000000000001004", loaded.Code().String())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_UnknownShipment_NotFound() {
	err := suite.repository.Update(context.Background(), suite.newShipment("ENV1000000000001005", "1"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_UnknownShipment_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetForUpdate() {
	ctx := context.Background()
	s := suite.newShipment("ENV1000000000001009", "4.5")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	tx := suite.db.Begin()
	defer tx.Rollback()
	locking := shipmentrepo.NewGormShipmentRepository(tx, suite.tracker)

	loaded, err := locking.GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(s.ID()))
	suite.Equal(s.Code().String(), loaded.Code().String())

	_, err = locking.GetForUpdate(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	s := suite.newShipment("ENV1000000000001006", "1")
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))

	_, err := suite.repository.Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, s.ID()), errs.ErrObjectNotFound)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
