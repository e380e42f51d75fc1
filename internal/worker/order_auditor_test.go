package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/polkiloo/stockmart/internal/domain/model"
	testhelpers "github.com/polkiloo/stockmart/internal/test"
)

func TestNewOrderAuditorDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	auditor := NewOrderAuditor(&testhelpers.OrderLogRecorderStub{}, 0, 0, logger)
	if auditor.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", auditor.workers)
	}
	if cap(auditor.events) != 1 {
		t.Fatalf("expected buffer default to 1, got %d", cap(auditor.events))
	}
}

func TestOrderAuditorRecordsChanges(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	recorded := make(chan model.StatusChange, 4)
	logs := &testhelpers.OrderLogRecorderStub{RecordFn: func(_ context.Context, change model.StatusChange) error {
		recorded <- change
		return nil
	}}
	auditor := NewOrderAuditor(logs, 2, 4, logger)

	auditor.Start(context.Background())
	auditor.NotifyStatusChange(model.StatusChange{OrderID: 5, From: model.OrderStatusPending, To: model.OrderStatusApproved})

	select {
	case change := <-recorded:
		if change.OrderID != 5 || change.To != model.OrderStatusApproved {
			t.Fatalf("unexpected change recorded: %+v", change)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for audit record")
	}

	auditor.Stop()
}

func TestOrderAuditorDropsWhenBufferFull(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewJSONHandler(&syncWriter{w: &buf, mu: &mu}, nil))

	// No workers started, so the single-slot buffer fills immediately.
	auditor := NewOrderAuditor(&testhelpers.OrderLogRecorderStub{}, 1, 1, logger)
	auditor.NotifyStatusChange(model.StatusChange{OrderID: 1, To: model.OrderStatusApproved})
	auditor.NotifyStatusChange(model.StatusChange{OrderID: 2, To: model.OrderStatusCanceled})

	mu.Lock()
	logged := buf.String()
	mu.Unlock()
	if !strings.Contains(logged, "audit event dropped") {
		t.Fatalf("expected drop warning, got %q", logged)
	}
	if !strings.Contains(logged, `"order_id":2`) {
		t.Fatalf("expected dropped order id in log, got %q", logged)
	}
}

func TestOrderAuditorLogsRecordFailure(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewJSONHandler(&syncWriter{w: &buf, mu: &mu}, nil))

	attempted := make(chan struct{}, 1)
	logs := &testhelpers.OrderLogRecorderStub{RecordFn: func(context.Context, model.StatusChange) error {
		attempted <- struct{}{}
		return errors.New("audit store down")
	}}
	auditor := NewOrderAuditor(logs, 1, 1, logger)

	auditor.Start(context.Background())
	auditor.NotifyStatusChange(model.StatusChange{OrderID: 3, From: model.OrderStatusPending, To: model.OrderStatusCanceled})

	select {
	case <-attempted:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for record attempt")
	}
	auditor.Stop()

	mu.Lock()
	logged := buf.String()
	mu.Unlock()
	if !strings.Contains(logged, "record order status change failed") {
		t.Fatalf("expected failure log, got %q", logged)
	}
}

func TestOrderAuditorStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	auditor := NewOrderAuditor(&testhelpers.OrderLogRecorderStub{}, 2, 2, logger)

	auditor.Start(context.Background())
	auditor.Stop()
	auditor.Stop()
}

type syncWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
