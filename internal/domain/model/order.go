package model

import (
	"fmt"
	"sort"
	"time"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
)

// OrderStatus describes the order lifecycle. Transitions only move forward:
// PENDING -> APPROVED, PENDING -> CANCELED, APPROVED -> CANCELED.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusApproved OrderStatus = "APPROVED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// ParseOrderStatus maps a raw string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCanceled:
		return OrderStatus(s), true
	}
	return "", false
}

// OrderLine references a product with a positive quantity. Lines are created
// together with the order and are immutable afterwards.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// ProductDemand is the per-product quantity aggregated across all lines of
// one order.
type ProductDemand struct {
	ProductID int64
	Quantity  int
}

// Order is the aggregate root owning its lines. The line collection is not
// reachable from outside the aggregate; callers read it through Lines and
// Demand only.
type Order struct {
	ID        int64
	UserID    int64
	Status    OrderStatus
	CreatedAt time.Time

	lines []OrderLine
}

// NewOrder validates the requested lines and builds a PENDING order with a
// defensive copy of them. It has no stock side effects.
func NewOrder(userID int64, lines []OrderLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order items are empty", domainErrors.ErrValidation)
	}
	copied := make([]OrderLine, len(lines))
	copy(copied, lines)
	for _, line := range copied {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %d", domainErrors.ErrValidation, line.ProductID)
		}
	}
	return &Order{
		UserID: userID,
		Status: OrderStatusPending,
		lines:  copied,
	}, nil
}

// RestoreOrder rebuilds an aggregate previously persisted by storage. It
// trusts the stored state and performs no validation.
func RestoreOrder(id, userID int64, status OrderStatus, createdAt time.Time, lines []OrderLine) *Order {
	copied := make([]OrderLine, len(lines))
	copy(copied, lines)
	return &Order{
		ID:        id,
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
		lines:     copied,
	}
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []OrderLine {
	copied := make([]OrderLine, len(o.lines))
	copy(copied, o.lines)
	return copied
}

// Demand sums quantities per product across all lines and returns the result
// sorted by ascending product id. Lock acquisition must follow this order so
// two transactions sharing products never lock them in conflicting orders.
func (o *Order) Demand() []ProductDemand {
	need := make(map[int64]int, len(o.lines))
	for _, line := range o.lines {
		need[line.ProductID] += line.Quantity
	}

	demand := make([]ProductDemand, 0, len(need))
	for productID, quantity := range need {
		demand = append(demand, ProductDemand{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(demand, func(i, j int) bool { return demand[i].ProductID < demand[j].ProductID })
	return demand
}

// TransitionTo enforces the forward-only state machine.
func (o *Order) TransitionTo(next OrderStatus) error {
	switch {
	case o.Status == OrderStatusCanceled:
		if next == OrderStatusCanceled {
			return domainErrors.ErrAlreadyCanceled
		}
		return fmt.Errorf("%w: order is canceled", domainErrors.ErrInvalidStateTransition)
	case o.Status == OrderStatusPending && (next == OrderStatusApproved || next == OrderStatusCanceled):
	case o.Status == OrderStatusApproved && next == OrderStatusCanceled:
	default:
		return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidStateTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

// StatusChange is emitted after a committed order status transition. It is
// the payload of the audit hook point.
type StatusChange struct {
	OrderID   int64
	From      OrderStatus
	To        OrderStatus
	ChangedAt time.Time
}
