package repository

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// ProductRepository reads the product catalog. This service never writes it.
type ProductRepository interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error)
}
