package productcache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/stockmart/internal/config"
	"github.com/polkiloo/stockmart/internal/domain/repository"
	"github.com/polkiloo/stockmart/internal/usecase"
)

// Module provides the product catalog, cached through redis when configured
// and served straight from storage otherwise.
var Module = fx.Provide(newCatalog)

type catalogParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Products  repository.ProductRepository
	Logger    *slog.Logger
}

func newCatalog(p catalogParams) usecase.ProductCatalog {
	if p.Config.RedisAddress == "" {
		return p.Products
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return New(client, p.Products, p.Config.ProductCacheTTL, p.Logger)
}
