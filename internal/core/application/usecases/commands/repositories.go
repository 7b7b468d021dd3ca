// Package commands contains the operations that change logistics state: shipment
// lifecycle, tracking milestones, packages, branches and user registration.
//
// Every handler follows the same shape: validate the command, open a unit of work,
// load and mutate aggregates, commit, then publish integration events best effort.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces, narrowed per handler so tests only mock what is used.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	TrackingLedgerFactory interface {
		TrackingLedger() ports.TrackingLedger
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// ShipmentUoW covers shipment writes together with their ledger entries and the
	// reference checks against users and branches.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		TrackingLedgerFactory
		UserRepoFactory
		BranchRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// PackageUoW adds packages to an existing shipment.
	PackageUoW interface {
		TxManager
		ShipmentRepoFactory
		PackageRepoFactory
	}

	PackageUoWFactory interface {
		Create() PackageUoW
	}

	BranchUoW interface {
		TxManager
		BranchRepoFactory
	}

	BranchUoWFactory interface {
		Create() BranchUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)
