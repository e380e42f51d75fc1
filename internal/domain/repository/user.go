package repository

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// UserRepository describes persistence operations with user accounts and
// their role sets.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, roles []model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
