package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/stockmart/internal/adapter/productcache"
	"github.com/polkiloo/stockmart/internal/app"
	"github.com/polkiloo/stockmart/internal/config"
	"github.com/polkiloo/stockmart/internal/logger"
	"github.com/polkiloo/stockmart/internal/pkg/auth"
	"github.com/polkiloo/stockmart/internal/server/http/router"
	"github.com/polkiloo/stockmart/internal/storage/postgres"
	"github.com/polkiloo/stockmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		productcache.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
