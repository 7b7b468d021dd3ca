package http

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/session"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/tracking"
)

// CommandHandler is the shape of every command handler that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is the shape of every handler that returns a result.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Sessions is the token lifecycle the API exposes.
type Sessions interface {
	Login(ctx context.Context, username, password string) (session.LoginResult, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) bool
	RefreshToken(ctx context.Context, refreshToken string) (session.RefreshResult, error)
	Authenticate(ctx context.Context, token string) (session.Principal, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateShipment      CommandHandler[commands.CreateShipmentCommand]
	UpdateShipment      CommandHandler[commands.UpdateShipmentCommand]
	ChangeStatus        QueryHandler[commands.ChangeShipmentStatusCommand, tracking.Event]
	DeleteShipment      CommandHandler[commands.DeleteShipmentCommand]
	AppendTrackingEvent QueryHandler[commands.AppendTrackingEventCommand, tracking.Event]
	AddPackage          CommandHandler[commands.AddPackageCommand]
	CreateBranch        CommandHandler[commands.CreateBranchCommand]
	RegisterUser        CommandHandler[commands.RegisterUserCommand]

	// Query handlers
	GetShipment         QueryHandler[queries.GetShipmentQuery, queries.ShipmentView]
	ListShipments       QueryHandler[queries.ListShipmentsQuery, queries.ShipmentPage]
	StatusCounts        QueryHandler[queries.GetStatusCountsQuery, []queries.StatusCount]
	ListTrackingEvents  QueryHandler[queries.ListTrackingEventsQuery, []queries.TrackingEventView]
	LatestTrackingEvent QueryHandler[queries.GetLatestTrackingEventQuery, *queries.TrackingEventView]
	ListBranches        QueryHandler[queries.ListBranchesQuery, []queries.BranchView]
	ListPackages        QueryHandler[queries.ListPackagesQuery, []queries.PackageView]
}

// Server adapts HTTP requests to commands and queries.
type Server struct {
	handlers Handlers
	sessions Sessions
	limiter  *loginLimiter
	logger   *slog.Logger
	now      func() time.Time
}

// Options tune the transport-level behaviour of the server.
type Options struct {
	// LoginRatePerMinute bounds login attempts per client IP. Zero disables the limit.
	LoginRatePerMinute int
	Now                func() time.Time
}

func NewServer(handlers Handlers, sessions Sessions, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Server{
		handlers: handlers,
		sessions: sessions,
		limiter:  newLoginLimiter(opts.LoginRatePerMinute, opts.Now),
		logger:   logger.With("component", "http"),
		now:      opts.Now,
	}
}
