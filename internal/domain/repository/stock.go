package repository

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// StockLedger mutates per-product stock counters. Implementations are scoped
// to an ambient transaction; every mutation must be preceded by LockForUpdate
// on the same product within that transaction.
type StockLedger interface {
	// LockForUpdate acquires an exclusive row lock on the stock record,
	// blocking until any concurrent holder releases it.
	LockForUpdate(ctx context.Context, productID int64) (*model.StockRecord, error)
	// DecrementIfSufficient subtracts amount, failing with
	// ErrInsufficientStock when the available quantity is smaller.
	DecrementIfSufficient(ctx context.Context, productID int64, amount int) error
	// Increment restores previously decremented quantity. No upper bound:
	// restoration is trusted to be bounded by prior decrements.
	Increment(ctx context.Context, productID int64, amount int) error
	// AdjustByDelta applies a manual correction, rejecting a negative result.
	AdjustByDelta(ctx context.Context, productID int64, delta int) (*model.StockRecord, error)
	// SetAbsolute overwrites the quantity, rejecting negative values.
	SetAbsolute(ctx context.Context, productID int64, quantity int) (*model.StockRecord, error)
}

// StockReader serves plain reads outside any transaction.
type StockReader interface {
	Get(ctx context.Context, productID int64) (*model.StockRecord, error)
}
