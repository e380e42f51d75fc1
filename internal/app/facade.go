package app

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/usecase"
)

// StockmartFacade exposes the full application surface to the HTTP layer.
type StockmartFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	stocks *usecase.StockUseCase
}

func NewStockmartFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, stocks *usecase.StockUseCase) *StockmartFacade {
	return &StockmartFacade{auth: auth, orders: orders, stocks: stocks}
}

func (f *StockmartFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StockmartFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StockmartFacade) ParseActor(token string) (model.Actor, error) {
	return f.auth.ParseActor(token)
}

func (f *StockmartFacade) CreateOrder(ctx context.Context, actor model.Actor, lines []model.OrderLine) (*usecase.OrderDetail, error) {
	return f.orders.Create(ctx, actor, lines)
}

func (f *StockmartFacade) ApproveOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error) {
	return f.orders.Approve(ctx, actor, orderID)
}

func (f *StockmartFacade) CancelOrder(ctx context.Context, actor model.Actor, orderID int64) (*usecase.OrderDetail, error) {
	return f.orders.Cancel(ctx, actor, orderID)
}

func (f *StockmartFacade) SearchOrders(ctx context.Context, actor model.Actor, filter usecase.SearchFilter) ([]usecase.OrderDetail, error) {
	return f.orders.Search(ctx, actor, filter)
}

func (f *StockmartFacade) AdjustStock(ctx context.Context, actor model.Actor, productID int64, delta int) (*model.StockRecord, error) {
	return f.stocks.Adjust(ctx, actor, productID, delta)
}

func (f *StockmartFacade) SetStock(ctx context.Context, actor model.Actor, productID int64, quantity int) (*model.StockRecord, error) {
	return f.stocks.Set(ctx, actor, productID, quantity)
}

func (f *StockmartFacade) GetStock(ctx context.Context, productID int64) (*model.StockRecord, error) {
	return f.stocks.Get(ctx, productID)
}
