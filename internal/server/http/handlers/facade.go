package handlers

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseActor(token string) (model.Actor, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor model.Actor, lines []model.OrderLine) (*usecase.OrderDetail, error)
	ApproveOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error)
	CancelOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error)
	SearchOrders(ctx context.Context, actor model.Actor, filter usecase.SearchFilter) ([]usecase.OrderDetail, error)
}

// StockFacade provides manual stock administration.
type StockFacade interface {
	AdjustStock(ctx context.Context, actor model.Actor, productID int64, delta int) (*model.StockRecord, error)
	SetStock(ctx context.Context, actor model.Actor, productID int64, quantity int) (*model.StockRecord, error)
	GetStock(ctx context.Context, productID int64) (*model.StockRecord, error)
}

// StockmartFacade aggregates the full set of operations used across handlers.
type StockmartFacade interface {
	AuthFacade
	OrderFacade
	StockFacade
}
