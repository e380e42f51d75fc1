package test

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn  func(context.Context, model.Actor, []model.OrderLine) (*usecase.OrderDetail, error)
	ApproveFn func(context.Context, model.Actor, int64) (*usecase.OrderDetail, error)
	CancelFn  func(context.Context, model.Actor, int64) (*usecase.OrderDetail, error)
	SearchFn  func(context.Context, model.Actor, usecase.SearchFilter) ([]usecase.OrderDetail, error)
}

// CreateOrder delegates to provided function or returns a default detail.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, lines []model.OrderLine) (*usecase.OrderDetail, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, lines)
	}
	return &usecase.OrderDetail{ID: 1, OwnerID: actor.ID, Status: model.OrderStatusPending}, nil
}

// ApproveOrder delegates to provided function or approves unconditionally.
func (s OrderFacadeStub) ApproveOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, actor, orderID)
	}
	return &usecase.OrderDetail{ID: orderID, Status: model.OrderStatusApproved}, nil
}

// CancelOrder delegates to provided function or cancels unconditionally.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, orderID)
	}
	return &usecase.OrderDetail{ID: orderID, Status: model.OrderStatusCanceled}, nil
}

// SearchOrders returns preconfigured results.
func (s OrderFacadeStub) SearchOrders(ctx context.Context, actor model.Actor, filter usecase.SearchFilter) ([]usecase.OrderDetail, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, actor, filter)
	}
	return []usecase.OrderDetail{{ID: 1, OwnerID: actor.ID, Status: model.OrderStatusPending}}, nil
}

// StockFacadeStub simulates stock administration operations.
type StockFacadeStub struct {
	AdjustFn func(context.Context, model.Actor, int64, int) (*model.StockRecord, error)
	SetFn    func(context.Context, model.Actor, int64, int) (*model.StockRecord, error)
	GetFn    func(context.Context, int64) (*model.StockRecord, error)
}

// AdjustStock applies configured handler or echoes the delta.
func (s StockFacadeStub) AdjustStock(ctx context.Context, actor model.Actor, productID int64, delta int) (*model.StockRecord, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, actor, productID, delta)
	}
	return &model.StockRecord{ProductID: productID, Quantity: delta}, nil
}

// SetStock applies configured handler or echoes the quantity.
func (s StockFacadeStub) SetStock(ctx context.Context, actor model.Actor, productID int64, quantity int) (*model.StockRecord, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, actor, productID, quantity)
	}
	return &model.StockRecord{ProductID: productID, Quantity: quantity}, nil
}

// GetStock returns the configured record.
func (s StockFacadeStub) GetStock(ctx context.Context, productID int64) (*model.StockRecord, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, productID)
	}
	return &model.StockRecord{ProductID: productID, Quantity: 10}, nil
}

// StockmartFacadeStub aggregates facade dependencies for HTTP layer tests.
type StockmartFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	StockFacadeStub
}
