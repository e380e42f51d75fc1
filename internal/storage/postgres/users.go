package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, roles []model.Role) (*model.User, error) {
	var user *model.User
	err := r.storage.withinTx(ctx, func(tx pgx.Tx) error {
		const insertUser = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
		var u model.User
		if err := tx.QueryRow(ctx, insertUser, login, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
			return translateErr(err)
		}

		const insertRole = `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`
		for _, role := range roles {
			if _, err := tx.Exec(ctx, insertRole, u.ID, role); err != nil {
				return translateErr(err)
			}
		}

		u.Login = login
		u.PasswordHash = passwordHash
		u.Roles = append([]model.Role(nil), roles...)
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login = $1`
	return r.getUser(ctx, query, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id = $1`
	return r.getUser(ctx, query, id)
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, translateErr(err)
	}

	roles, err := r.loadRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

func (r *userRepository) loadRoles(ctx context.Context, userID int64) ([]model.Role, error) {
	const query = `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		role, ok := model.ParseRole(raw)
		if !ok {
			return nil, fmt.Errorf("unknown role %q for user %d", raw, userID)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}
