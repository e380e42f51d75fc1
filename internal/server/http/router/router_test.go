package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/stockmart/internal/test"
	"github.com/polkiloo/stockmart/internal/usecase"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.StockmartFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			SearchFn: func(_ context.Context, actor model.Actor, _ usecase.SearchFilter) ([]usecase.OrderDetail, error) {
				return []usecase.OrderDetail{{ID: 7, OwnerID: actor.ID, Status: model.OrderStatusPending}}, nil
			},
		},
		StockFacadeStub: testhelpers.StockFacadeStub{},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for signup, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order search, got %d", resp.Code)
	}
}

func TestSetupRejectsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.StockmartFacadeStub{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stocks/1", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a token, got %d", resp.Code)
	}
}

var _ handlers.StockmartFacade = (*testhelpers.StockmartFacadeStub)(nil)
