package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/stockmart/internal/authz"
	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/domain/repository"
)

// ProductCatalog resolves product references. It is read-only for this
// service; the catalog itself is provisioned elsewhere.
type ProductCatalog interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error)
}

// StatusNotifier receives committed order status transitions. Delivery is
// best effort and must never block the calling request.
type StatusNotifier interface {
	NotifyStatusChange(change model.StatusChange)
}

// OrderDetail is the read model of an order. Totals are computed from the
// current product price at read time, never stored.
type OrderDetail struct {
	ID            int64
	OwnerID       int64
	Status        model.OrderStatus
	TotalAmount   int
	TotalQuantity int
	CreatedAt     time.Time
	Items         []OrderDetailItem
}

type OrderDetailItem struct {
	ProductID int64
	Name      string
	UnitPrice int
	Quantity  int
	LineTotal int
}

// SearchFilter narrows order searches. Time bounds arrive already converted
// to UTC instants by the transport layer.
type SearchFilter struct {
	UserID *int64
	Status *model.OrderStatus
	From   *time.Time
	To     *time.Time
}

// OrderUseCase drives the order lifecycle: it is the only component that
// opens transactions, aggregates per-product demand, and touches the stock
// ledger.
type OrderUseCase struct {
	orders   repository.OrderRepository
	uow      repository.UnitOfWork
	catalog  ProductCatalog
	notifier StatusNotifier
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, uow repository.UnitOfWork, catalog ProductCatalog, notifier StatusNotifier) *OrderUseCase {
	return &OrderUseCase{orders: orders, uow: uow, catalog: catalog, notifier: notifier}
}

// Create validates the requested lines, checks every referenced product
// exists, and persists the order atomically in PENDING. Stock is not touched.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, lines []model.OrderLine) (*OrderDetail, error) {
	order, err := model.NewOrder(actor.ID, lines)
	if err != nil {
		return nil, err
	}

	products, err := u.resolveProducts(ctx, order)
	if err != nil {
		return nil, err
	}

	saved, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	return buildDetail(saved, products)
}

// Approve moves a PENDING order to APPROVED, decrementing stock for the
// aggregated demand of all lines. The order row and every stock row are
// locked inside one transaction; any insufficiency rolls everything back.
func (u *OrderUseCase) Approve(ctx context.Context, actor model.Actor, orderID int64) (*OrderDetail, error) {
	if !authz.CanApprove(actor) {
		return nil, fmt.Errorf("%w: approving orders requires MANAGER or ADMIN", domainErrors.ErrAuthorizationDenied)
	}

	var approved *model.Order
	err := u.uow.WithinTransaction(ctx, func(tx repository.Tx) error {
		order, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(model.OrderStatusApproved); err != nil {
			return err
		}

		// Demand is already summed per product and sorted by id, so locks
		// are acquired in the same order in every transaction.
		for _, need := range order.Demand() {
			if _, err := tx.Stocks().LockForUpdate(ctx, need.ProductID); err != nil {
				return err
			}
			if err := tx.Stocks().DecrementIfSufficient(ctx, need.ProductID, need.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, model.OrderStatusApproved); err != nil {
			return err
		}
		approved = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(orderID, model.OrderStatusPending, model.OrderStatusApproved)
	return u.detailOf(ctx, approved)
}

// Cancel moves an order to CANCELED. A PENDING order is canceled by its
// owner or an elevated actor with no stock effect; an APPROVED order only by
// an elevated actor, restoring exactly the demand that approval decremented.
func (u *OrderUseCase) Cancel(ctx context.Context, actor model.Actor, orderID int64) (*OrderDetail, error) {
	var (
		canceled *model.Order
		from     model.OrderStatus
	)
	err := u.uow.WithinTransaction(ctx, func(tx repository.Tx) error {
		order, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		from = order.Status
		switch order.Status {
		case model.OrderStatusCanceled:
			return domainErrors.ErrAlreadyCanceled
		case model.OrderStatusPending:
			if !authz.CanCancel(actor, order) {
				return fmt.Errorf("%w: only the order owner or MANAGER/ADMIN may cancel a pending order", domainErrors.ErrAuthorizationDenied)
			}
		case model.OrderStatusApproved:
			if !authz.CanCancel(actor, order) {
				return fmt.Errorf("%w: approved orders may be canceled by MANAGER/ADMIN only", domainErrors.ErrAuthorizationDenied)
			}
			for _, need := range order.Demand() {
				if _, err := tx.Stocks().LockForUpdate(ctx, need.ProductID); err != nil {
					return err
				}
				if err := tx.Stocks().Increment(ctx, need.ProductID, need.Quantity); err != nil {
					return err
				}
			}
		}

		if err := order.TransitionTo(model.OrderStatusCanceled); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCanceled); err != nil {
			return err
		}
		canceled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(orderID, from, model.OrderStatusCanceled)
	return u.detailOf(ctx, canceled)
}

// Search returns detail views matching the filter. Plain actors are always
// scoped to their own orders; an explicit foreign userId is rejected rather
// than silently narrowed. An empty result is a reportable condition.
func (u *OrderUseCase) Search(ctx context.Context, actor model.Actor, filter SearchFilter) ([]OrderDetail, error) {
	if filter.UserID != nil && !authz.CanSearchFor(actor, *filter.UserID) {
		return nil, fmt.Errorf("%w: searching other users' orders requires MANAGER or ADMIN", domainErrors.ErrAuthorizationDenied)
	}
	if !authz.HasElevatedRole(actor) {
		own := actor.ID
		filter.UserID = &own
	}

	orders, err := u.orders.Search(ctx, repository.OrderFilter{
		UserID: filter.UserID,
		Status: filter.Status,
		From:   filter.From,
		To:     filter.To,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no orders match the search", domainErrors.ErrNotFound)
	}

	seen := make(map[int64]struct{})
	var productIDs []int64
	for i := range orders {
		for _, line := range orders[i].Lines() {
			if _, ok := seen[line.ProductID]; !ok {
				seen[line.ProductID] = struct{}{}
				productIDs = append(productIDs, line.ProductID)
			}
		}
	}
	products, err := u.catalog.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	details := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		detail, err := buildDetail(&orders[i], products)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (u *OrderUseCase) detailOf(ctx context.Context, order *model.Order) (*OrderDetail, error) {
	products, err := u.resolveProducts(ctx, order)
	if err != nil {
		return nil, err
	}
	return buildDetail(order, products)
}

func (u *OrderUseCase) resolveProducts(ctx context.Context, order *model.Order) (map[int64]model.Product, error) {
	demand := order.Demand()
	ids := make([]int64, 0, len(demand))
	for _, need := range demand {
		ids = append(ids, need.ProductID)
	}

	products, err := u.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("%w: product %d", domainErrors.ErrNotFound, id)
		}
	}
	return products, nil
}

func (u *OrderUseCase) notify(orderID int64, from, to model.OrderStatus) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifyStatusChange(model.StatusChange{
		OrderID:   orderID,
		From:      from,
		To:        to,
		ChangedAt: time.Now().UTC(),
	})
}

func buildDetail(order *model.Order, products map[int64]model.Product) (*OrderDetail, error) {
	lines := order.Lines()
	items := make([]OrderDetailItem, 0, len(lines))
	totalAmount, totalQuantity := 0, 0
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", domainErrors.ErrNotFound, line.ProductID)
		}
		lineTotal := product.Price * line.Quantity
		items = append(items, OrderDetailItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		totalAmount += lineTotal
		totalQuantity += line.Quantity
	}

	return &OrderDetail{
		ID:            order.ID,
		OwnerID:       order.UserID,
		Status:        order.Status,
		TotalAmount:   totalAmount,
		TotalQuantity: totalQuantity,
		CreatedAt:     order.CreatedAt,
		Items:         items,
	}, nil
}
