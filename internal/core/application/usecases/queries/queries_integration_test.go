package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/branchrepo"
	"logistics/internal/adapters/out/postgres/packagerepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/trackingrepo"
	"logistics/internal/adapters/out/postgres/userrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	now       time.Time

	customer    *user.User
	origin      *branch.Branch
	destination *branch.Branch
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.now = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	ctx := context.Background()
	customer, err := user.NewUser(kernel.NewUUID(), "cliente1", "hash", "Ana Gómez", "ana@example.com", user.Customer)
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.db, noopTracker{}).Add(ctx, customer))
	suite.customer = customer

	branches := branchrepo.NewGormBranchRepository(suite.db, noopTracker{})
	suite.origin, err = branch.NewBranch(kernel.NewUUID(), "Centro", "Bogotá", "Cl 26", "601")
	suite.Require().NoError(err)
	suite.destination, err = branch.NewBranch(kernel.NewUUID(), "Poblado", "Medellín", "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(branches.Add(ctx, suite.origin))
	suite.Require().NoError(branches.Add(ctx, suite.destination))
}

func (suite *QueriesIntegrationTestSuite) seedShipment(code string, createdAt time.Time, status shipment.Status) *shipment.Shipment {
	c, err := shipment.NewCode(code)
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), c, suite.customer.ID(), suite.origin.ID(), suite.destination.ID(),
		decimal.RequireFromString("3.5"), "handle with care", createdAt, shipment.DefaultPricingPolicy())
	suite.Require().NoError(err)

	repo := shipmentrepo.NewGormShipmentRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), s))
	suite.appendEvent(s.ID(), shipment.Created.String(), createdAt)

	if status != shipment.Created {
		suite.Require().NoError(s.ChangeStatus(status))
		suite.Require().NoError(repo.Update(context.Background(), s))
		suite.appendEvent(s.ID(), status.String(), createdAt.Add(time.Hour))
	}
	return s
}

func (suite *QueriesIntegrationTestSuite) appendEvent(shipmentID kernel.UUID, label string, at time.Time) {
	e, err := tracking.NewEvent(kernel.NewUUID(), shipmentID, label, "Bogotá", nil, "")
	suite.Require().NoError(err)
	ledger := trackingrepo.NewGormTrackingLedger(suite.db, noopTracker{}, func() time.Time { return at })
	_, err = ledger.Append(context.Background(), e.Stamped(at))
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_ByIDAndCode() {
	ctx := context.Background()
	s := suite.seedShipment("ENV1000000000001001", suite.now, shipment.InTransit)

	p, err := parcel.NewPackage(kernel.NewUUID(), s.ID(), "Books", decimal.NewFromInt(80), decimal.NewFromInt(2), "")
	suite.Require().NoError(err)
	suite.Require().NoError(packagerepo.NewGormPackageRepository(suite.db, noopTracker{}).Add(ctx, p))

	handler := queries.NewGetShipmentQueryHandler(suite.db)

	byID, err := queries.NewGetShipmentByIDQuery(s.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, byID)
	suite.Require().NoError(err)

	suite.Equal(s.ID(), view.ID)
	suite.Equal("ENV1000000000001001", view.Code)
	suite.Equal("EN_TRANSITO", view.Status)
	suite.Equal("Ana Gómez", view.Customer.FullName)
	suite.Equal("Centro", view.Origin.Name)
	suite.Equal("Medellín", view.Destination.City)
	suite.Equal("35", view.Price.String())
	suite.True(view.CreatedAt.Equal(suite.now))
	suite.True(view.EstimatedDelivery.Equal(suite.now.AddDate(0, 0, 3)))
	suite.Require().NotNil(view.Latest)
	suite.Equal("EN_TRANSITO", view.Latest.Label)
	suite.Require().Len(view.Packages, 1)
	suite.Equal("Books", view.Packages[0].Description)

	byCode, err := queries.NewGetShipmentByCodeQuery("ENV1000000000001001")
	suite.Require().NoError(err)
	viewByCode, err := handler.Handle(ctx, byCode)
	suite.Require().NoError(err)
	suite.Equal(view.ID, viewByCode.ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_NotFound() {
	handler := queries.NewGetShipmentQueryHandler(suite.db)

	byID, err := queries.NewGetShipmentByIDQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), byID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	byCode, err := queries.NewGetShipmentByCodeQuery("ENV404")
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), byCode)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListShipments_PagesAndFilters() {
	ctx := context.Background()
	for i, status := range []shipment.Status{shipment.Created, shipment.Collected, shipment.Created} {
		suite.seedShipment("ENV200000000000"+string(rune('1'+i)), suite.now.Add(time.Duration(i)*time.Minute), status)
	}

	handler := queries.NewListShipmentsQueryHandler(suite.db)

	query, err := queries.NewListShipmentsQuery(0, 2)
	suite.Require().NoError(err)
	page, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(3), page.TotalItems)
	suite.Equal(2, page.TotalPages)
	suite.Require().Len(page.Items, 2)
	suite.Equal("ENV2000000000003", page.Items[0].Code)

	query, err = queries.NewListShipmentsQuery(1, 2)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal("ENV2000000000001", page.Items[0].Code)

	query, err = queries.NewListShipmentsQuery(0, 0)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query.WithStatus(shipment.Created).WithCustomer(suite.customer.ID()))
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.TotalItems)

	page, err = handler.Handle(ctx, query.WithCustomer(kernel.NewUUID()))
	suite.Require().NoError(err)
	suite.Empty(page.Items)
	suite.Equal(0, page.TotalPages)
}

func (suite *QueriesIntegrationTestSuite) TestGetStatusCounts_AllStatusesPresent() {
	suite.seedShipment("ENV3000000000001", suite.now, shipment.Created)
	suite.seedShipment("ENV3000000000002", suite.now, shipment.Cancelled)
	suite.seedShipment("ENV3000000000003", suite.now, shipment.Cancelled)

	counts, err := queries.NewGetStatusCountsQueryHandler(suite.db).Handle(
		context.Background(), queries.NewGetStatusCountsQuery(),
	)
	suite.Require().NoError(err)

	suite.Require().Len(counts, 7)
	byStatus := make(map[string]int64)
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	suite.Equal(int64(1), byStatus["CREADO"])
	suite.Equal(int64(2), byStatus["CANCELADO"])
	suite.Equal(int64(0), byStatus["ENTREGADO"])
	suite.Equal("CREADO", counts[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestTrackingEvents_OrderAndLatest() {
	ctx := context.Background()
	s := suite.seedShipment("ENV4000000000001", suite.now, shipment.Created)
	// same timestamp: insertion order decides
	suite.appendEvent(s.ID(), "Arrived at hub", suite.now.Add(time.Minute))
	suite.appendEvent(s.ID(), "Left hub", suite.now.Add(time.Minute))

	list := queries.NewListTrackingEventsQueryHandler(suite.db)

	asc, err := queries.NewListTrackingEventsQuery(s.ID(), ports.Ascending)
	suite.Require().NoError(err)
	events, err := list.Handle(ctx, asc)
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal([]string{"CREADO", "Arrived at hub", "Left hub"},
		[]string{events[0].Label, events[1].Label, events[2].Label})
	suite.Equal("Bogotá", events[0].Location)
	suite.Nil(events[0].UserID)

	desc, err := queries.NewListTrackingEventsQuery(s.ID(), ports.Descending)
	suite.Require().NoError(err)
	events, err = list.Handle(ctx, desc)
	suite.Require().NoError(err)
	suite.Equal("Left hub", events[0].Label)

	latestQuery, err := queries.NewGetLatestTrackingEventQuery(s.ID())
	suite.Require().NoError(err)
	latest, err := queries.NewGetLatestTrackingEventQueryHandler(suite.db).Handle(ctx, latestQuery)
	suite.Require().NoError(err)
	suite.Require().NotNil(latest)
	suite.Equal("Left hub", latest.Label)

	unknown, err := queries.NewListTrackingEventsQuery(kernel.NewUUID(), ports.Ascending)
	suite.Require().NoError(err)
	_, err = list.Handle(ctx, unknown)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListBranchesAndPackages() {
	ctx := context.Background()
	branches, err := queries.NewListBranchesQueryHandler(suite.db).Handle(ctx, queries.NewListBranchesQuery())
	suite.Require().NoError(err)
	suite.Require().Len(branches, 2)
	suite.Equal("Bogotá", branches[0].City)
	suite.Equal("Cl 26", branches[0].Address)

	s := suite.seedShipment("ENV5000000000001", suite.now, shipment.Created)
	query, err := queries.NewListPackagesQuery(s.ID())
	suite.Require().NoError(err)
	packages, err := queries.NewListPackagesQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.NotNil(packages)
	suite.Empty(packages)
}

func (suite *QueriesIntegrationTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := queries.NewGetStatusCountsQueryHandler(suite.db).Handle(ctx, queries.NewGetStatusCountsQuery())
	suite.Require().Error(err)
}
