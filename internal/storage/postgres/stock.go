package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
)

// stockLedger implements repository.StockLedger on top of an open
// transaction. Every mutation assumes LockForUpdate was called first within
// the same transaction.
type stockLedger struct {
	tx pgx.Tx
}

type stockReader struct {
	storage *Storage
}

func (l *stockLedger) LockForUpdate(ctx context.Context, productID int64) (*model.StockRecord, error) {
	const query = `SELECT product_id, quantity FROM stocks WHERE product_id = $1 FOR UPDATE`
	var record model.StockRecord
	if err := l.tx.QueryRow(ctx, query, productID).Scan(&record.ProductID, &record.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: stock for product %d", domainErrors.ErrNotFound, productID)
		}
		return nil, translateErr(err)
	}
	return &record, nil
}

func (l *stockLedger) DecrementIfSufficient(ctx context.Context, productID int64, amount int) error {
	const query = `UPDATE stocks SET quantity = quantity - $2 WHERE product_id = $1 AND quantity >= $2`
	tag, err := l.tx.Exec(ctx, query, productID, amount)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d needs %d", domainErrors.ErrInsufficientStock, productID, amount)
	}
	return nil
}

func (l *stockLedger) Increment(ctx context.Context, productID int64, amount int) error {
	const query = `UPDATE stocks SET quantity = quantity + $2 WHERE product_id = $1`
	tag, err := l.tx.Exec(ctx, query, productID, amount)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock for product %d", domainErrors.ErrNotFound, productID)
	}
	return nil
}

func (l *stockLedger) AdjustByDelta(ctx context.Context, productID int64, delta int) (*model.StockRecord, error) {
	const query = `UPDATE stocks SET quantity = quantity + $2 WHERE product_id = $1 AND quantity + $2 >= 0 RETURNING product_id, quantity`
	var record model.StockRecord
	if err := l.tx.QueryRow(ctx, query, productID, delta).Scan(&record.ProductID, &record.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row exists (it was just locked), so the guard failed.
			return nil, fmt.Errorf("%w: product %d cannot go below zero", domainErrors.ErrInsufficientStock, productID)
		}
		return nil, translateErr(err)
	}
	return &record, nil
}

func (l *stockLedger) SetAbsolute(ctx context.Context, productID int64, quantity int) (*model.StockRecord, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must be zero or positive", domainErrors.ErrValidation)
	}
	const query = `UPDATE stocks SET quantity = $2 WHERE product_id = $1 RETURNING product_id, quantity`
	var record model.StockRecord
	if err := l.tx.QueryRow(ctx, query, productID, quantity).Scan(&record.ProductID, &record.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: stock for product %d", domainErrors.ErrNotFound, productID)
		}
		return nil, translateErr(err)
	}
	return &record, nil
}

func (r *stockReader) Get(ctx context.Context, productID int64) (*model.StockRecord, error) {
	const query = `SELECT product_id, quantity FROM stocks WHERE product_id = $1`
	var record model.StockRecord
	if err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&record.ProductID, &record.Quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: stock for product %d", domainErrors.ErrNotFound, productID)
		}
		return nil, translateErr(err)
	}
	return &record, nil
}
