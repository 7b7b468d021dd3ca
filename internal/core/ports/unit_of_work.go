package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after Begin
// share its transaction; Commit makes their writes visible atomically.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ShipmentRepository() ShipmentRepository
	TrackingLedger() TrackingLedger
	UserRepository() UserRepository
	BranchRepository() BranchRepository
	PackageRepository() PackageRepository
}
