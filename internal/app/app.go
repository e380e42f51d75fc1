package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/stockmart/internal/config"
	"github.com/polkiloo/stockmart/internal/domain/repository"
	"github.com/polkiloo/stockmart/internal/server/http/handlers"
	"github.com/polkiloo/stockmart/internal/usecase"
	"github.com/polkiloo/stockmart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStockmartFacade,
		newHTTPServer,
		newOrderAuditor,
		func(f *StockmartFacade) handlers.StockmartFacade { return f },
		func(a *worker.OrderAuditor) usecase.StatusNotifier { return a },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type auditorParams struct {
	fx.In

	Logs   repository.OrderLogRepository
	Config *config.Config
	Logger *slog.Logger
}

func newOrderAuditor(p auditorParams) *worker.OrderAuditor {
	return worker.NewOrderAuditor(
		p.Logs,
		p.Config.AuditWorkers,
		p.Config.AuditBuffer,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Auditor    *worker.OrderAuditor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting stockmart", slog.String("addr", p.Server.Addr))
			// The start context is canceled once startup completes; the
			// auditor runs until Stop.
			p.Auditor.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Auditor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("stockmart stopped")
			return nil
		},
	})
}
