package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/domain/repository"
)

// OrderAuditor records committed order status transitions into the audit
// trail. It consumes the status-change hook asynchronously so order requests
// never wait on audit writes; delivery is best effort.
type OrderAuditor struct {
	logs    repository.OrderLogRepository
	workers int
	logger  *slog.Logger

	events chan model.StatusChange
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderAuditor constructs the auditor with a worker pool and a bounded
// event buffer.
func NewOrderAuditor(logs repository.OrderLogRepository, workers, buffer int, logger *slog.Logger) *OrderAuditor {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &OrderAuditor{
		logs:    logs,
		workers: workers,
		logger:  logger,
		events:  make(chan model.StatusChange, buffer),
	}
}

// Start launches background workers.
func (a *OrderAuditor) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	for i := 0; i < a.workers; i++ {
		a.wg.Add(1)
		go a.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (a *OrderAuditor) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()
}

// NotifyStatusChange implements usecase.StatusNotifier. It never blocks:
// when the buffer is full the event is dropped and logged.
func (a *OrderAuditor) NotifyStatusChange(change model.StatusChange) {
	select {
	case a.events <- change:
	default:
		a.logger.Warn("audit event dropped, buffer full",
			slog.Int64("order_id", change.OrderID),
			slog.String("to_status", string(change.To)),
		)
	}
}

func (a *OrderAuditor) worker(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-a.events:
			a.record(ctx, change)
		}
	}
}

func (a *OrderAuditor) record(ctx context.Context, change model.StatusChange) {
	if err := a.logs.Record(ctx, change); err != nil {
		a.logger.Error("record order status change failed",
			slog.Int64("order_id", change.OrderID),
			slog.String("from_status", string(change.From)),
			slog.String("to_status", string(change.To)),
			slog.String("error", err.Error()),
		)
	}
}
