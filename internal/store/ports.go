package store

import (
	"context"
	"errors"

	"moneytracker/internal/core"
)

// ErrNotInitialized is returned by a backend used before its client was set up.
var ErrNotInitialized = errors.New("store not initialized")

// Ports for outbound adapters.
type (
	// TransactionCreator persists one record and assigns its ID.
	TransactionCreator interface {
		Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error)
	}

	// TransactionLister returns every record, oldest first. An empty
	// collection yields an empty, non-nil slice.
	TransactionLister interface {
		List(ctx context.Context) ([]core.Transaction, error)
	}

	// Pinger reports whether the backend is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	Store interface {
		TransactionCreator
		TransactionLister
		Pinger
	}
)
