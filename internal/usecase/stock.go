package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/stockmart/internal/authz"
	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/domain/repository"
)

// StockUseCase covers manual stock administration. Approval/cancellation
// driven stock movement lives in OrderUseCase; this is the operator surface.
type StockUseCase struct {
	uow    repository.UnitOfWork
	stocks repository.StockReader
}

// NewStockUseCase constructs StockUseCase.
func NewStockUseCase(uow repository.UnitOfWork, stocks repository.StockReader) *StockUseCase {
	return &StockUseCase{uow: uow, stocks: stocks}
}

// Adjust applies a signed delta to a product's stock under a row lock. A
// delta that would drive the quantity negative fails the whole operation.
func (u *StockUseCase) Adjust(ctx context.Context, actor model.Actor, productID int64, delta int) (*model.StockRecord, error) {
	if !authz.CanManageStock(actor) {
		return nil, fmt.Errorf("%w: adjusting stock requires MANAGER or ADMIN", domainErrors.ErrAuthorizationDenied)
	}

	var record *model.StockRecord
	err := u.uow.WithinTransaction(ctx, func(tx repository.Tx) error {
		if _, err := tx.Stocks().LockForUpdate(ctx, productID); err != nil {
			return err
		}
		adjusted, err := tx.Stocks().AdjustByDelta(ctx, productID, delta)
		if err != nil {
			return err
		}
		record = adjusted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Set overwrites a product's stock quantity under a row lock. Negative
// quantities are rejected before any lock is taken.
func (u *StockUseCase) Set(ctx context.Context, actor model.Actor, productID int64, quantity int) (*model.StockRecord, error) {
	if !authz.CanManageStock(actor) {
		return nil, fmt.Errorf("%w: setting stock requires MANAGER or ADMIN", domainErrors.ErrAuthorizationDenied)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must be zero or positive", domainErrors.ErrValidation)
	}

	var record *model.StockRecord
	err := u.uow.WithinTransaction(ctx, func(tx repository.Tx) error {
		if _, err := tx.Stocks().LockForUpdate(ctx, productID); err != nil {
			return err
		}
		set, err := tx.Stocks().SetAbsolute(ctx, productID, quantity)
		if err != nil {
			return err
		}
		record = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns the current stock record without locking.
func (u *StockUseCase) Get(ctx context.Context, productID int64) (*model.StockRecord, error) {
	return u.stocks.Get(ctx, productID)
}
