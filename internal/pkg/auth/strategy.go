package auth

import (
	"time"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// Strategy issues and verifies auth tokens carrying the actor identity. The
// role set travels inside the token so request handling never needs a user
// lookup to authorize.
type Strategy interface {
	IssueToken(userID int64, roles []model.Role) (string, error)
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
