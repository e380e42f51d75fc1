package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

func (r *productRepository) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	const query = `SELECT id, name, price FROM products WHERE id = $1`
	var p model.Product
	if err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&p.ID, &p.Name, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", domainErrors.ErrNotFound, productID)
		}
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *productRepository) ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error) {
	result := make(map[int64]model.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	const query = `SELECT id, name, price FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
