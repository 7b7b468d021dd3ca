package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apihttp "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/jwttoken"
	"logistics/internal/adapters/out/kafkaevents"
	"logistics/internal/adapters/out/passwords"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/revocation"
	"logistics/internal/core/application/session"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type eventPublisher interface {
	ports.EventPublisher
	Close() error
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	now        func() time.Time

	policy      shipment.PricingPolicy
	tokens      *jwttoken.Issuer
	passwords   *passwords.Encoder
	publisher   eventPublisher
	revocations ports.RevocationStore
	purger      jobs.RevocationPurger
	redis       *redis.Client
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	now := time.Now

	policy, err := shipment.NewPricingPolicy(cfg.PricingUnitRate, cfg.PricingETADays)
	if err != nil {
		return nil, fmt.Errorf("pricing policy: %w", err)
	}

	tokens, err := jwttoken.NewIssuerWithClock(cfg.JWTSecret, now)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactoryWithClock(gormDB, now),
		logger:     logger,
		now:        now,
		policy:     policy,
		tokens:     tokens,
		passwords:  passwords.NewEncoder(passwords.DefaultParams),
	}

	switch cfg.RevocationBackend {
	case RevocationBackendRedis:
		root.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		root.revocations = revocation.NewRedisStoreWithClock(root.redis, now)
	default:
		store := revocation.NewMemoryStore()
		root.revocations = store
		root.purger = store
	}

	if cfg.KafkaBroker != "" {
		root.publisher = kafkaevents.NewPublisher(cfg.KafkaBroker, cfg.KafkaShipmentTopic)
	} else {
		root.publisher = kafkaevents.NoopPublisher{}
	}

	return root, nil
}

// Ping checks the external dependencies that are reachable at startup.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	if c.redis != nil {
		if err = c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
	}
	return nil
}

// Close releases the clients the root opened. The database handle belongs to the caller.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	if err := c.publisher.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("close event publisher: %w", err))
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(closeErrs...)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.shipmentUoWFactory(), services.NewCodeGenerator(), c.policy, c.now, c.publisher, c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.shipmentUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateChangeShipmentStatusCommandHandler() commands.ChangeShipmentStatusCommandHandler {
	return commands.NewChangeShipmentStatusCommandHandler(c.shipmentUoWFactory(), c.now, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory(), c.now, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAppendTrackingEventCommandHandler() commands.AppendTrackingEventCommandHandler {
	return commands.NewAppendTrackingEventCommandHandler(c.shipmentUoWFactory(), c.now, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddPackageCommandHandler() commands.AddPackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewAddPackageCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateBranchCommandHandler() commands.CreateBranchCommandHandler {
	var f commands.BranchUoWFactory = FuncBranchUoWFactory(func() commands.BranchUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCreateBranchCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewRegisterUserCommandHandler(f, c.passwords)
}

func (c *CompositionRoot) CreateSessionService() *session.Service {
	cfg := session.Config{AccessTTL: c.cfg.JWTAccessTTL, RefreshTTL: c.cfg.JWTRefreshTTL}
	return session.NewService(uowUserReader{factory: c.uowFactory}, c.passwords, c.tokens, c.revocations, cfg, c.logger)
}

func (c *CompositionRoot) CreateGetStatusCountsQueryHandler() queries.GetStatusCountsQueryHandler {
	return queries.NewGetStatusCountsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	createShipment := c.CreateCreateShipmentCommandHandler()
	updateShipment := c.CreateUpdateShipmentCommandHandler()
	changeStatus := c.CreateChangeShipmentStatusCommandHandler()
	deleteShipment := c.CreateDeleteShipmentCommandHandler()
	appendTracking := c.CreateAppendTrackingEventCommandHandler()
	addPackage := c.CreateAddPackageCommandHandler()
	createBranch := c.CreateCreateBranchCommandHandler()
	registerUser := c.CreateRegisterUserCommandHandler()

	handlers := apihttp.Handlers{
		CreateShipment:      &createShipment,
		UpdateShipment:      &updateShipment,
		ChangeStatus:        &changeStatus,
		DeleteShipment:      &deleteShipment,
		AppendTrackingEvent: &appendTracking,
		AddPackage:          &addPackage,
		CreateBranch:        &createBranch,
		RegisterUser:        &registerUser,

		GetShipment:         queries.NewGetShipmentQueryHandler(c.gormDB),
		ListShipments:       queries.NewListShipmentsQueryHandler(c.gormDB),
		StatusCounts:        c.CreateGetStatusCountsQueryHandler(),
		ListTrackingEvents:  queries.NewListTrackingEventsQueryHandler(c.gormDB),
		LatestTrackingEvent: queries.NewGetLatestTrackingEventQueryHandler(c.gormDB),
		ListBranches:        queries.NewListBranchesQueryHandler(c.gormDB),
		ListPackages:        queries.NewListPackagesQueryHandler(c.gormDB),
	}

	opts := apihttp.Options{LoginRatePerMinute: c.cfg.LoginRateLimit, Now: c.now}
	return apihttp.NewServer(handlers, c.CreateSessionService(), opts, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	schedules := jobs.Schedules{
		RevocationPurge: c.cfg.RevocationPurgeSchedule,
		StatusReport:    c.cfg.StatusReportSchedule,
	}
	return jobs.NewJobManager(schedules, c.purger, c.CreateGetStatusCountsQueryHandler(), c.now, c.logger)
}

// SeedAdmin registers the bootstrap administrator when ADMIN_PASSWORD is set and the
// account does not exist yet.
func (c *CompositionRoot) SeedAdmin(ctx context.Context) error {
	if c.cfg.AdminPassword == "" {
		return nil
	}

	cmd, err := commands.NewRegisterUserCommand(
		kernel.NewUUID(), c.cfg.AdminUsername, c.cfg.AdminPassword,
		"Administrator", c.cfg.AdminUsername+"@localhost", user.Admin.String(),
	)
	if err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}

	handler := c.CreateRegisterUserCommandHandler()
	err = handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return nil
	case err != nil:
		return fmt.Errorf("admin seed: %w", err)
	}

	c.logger.InfoContext(ctx, "Seeded administrator account", "username", c.cfg.AdminUsername)
	return nil
}

type uowUserReader struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (r uowUserReader) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.factory.CreateGorm().UserRepository().GetByUsername(ctx, username)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
