// Package authz holds the pure authorization decisions for order and stock
// operations. No I/O happens here; callers pass in everything a decision
// needs and act on the boolean result.
package authz

import "github.com/polkiloo/stockmart/internal/domain/model"

// HasElevatedRole reports whether the actor holds MANAGER or ADMIN.
func HasElevatedRole(actor model.Actor) bool {
	return actor.HasRole(model.RoleManager) || actor.HasRole(model.RoleAdmin)
}

// IsOwner reports whether the actor owns the order.
func IsOwner(actor model.Actor, order *model.Order) bool {
	return order != nil && actor.ID == order.UserID
}

// CanApprove gates order approval: elevated roles only.
func CanApprove(actor model.Actor) bool {
	return HasElevatedRole(actor)
}

// CanCancel gates order cancellation by the order's current status: a
// PENDING order may be canceled by its owner or an elevated actor, an
// APPROVED order by an elevated actor only. CANCELED never passes.
func CanCancel(actor model.Actor, order *model.Order) bool {
	if order == nil {
		return false
	}
	switch order.Status {
	case model.OrderStatusPending:
		return IsOwner(actor, order) || HasElevatedRole(actor)
	case model.OrderStatusApproved:
		return HasElevatedRole(actor)
	}
	return false
}

// CanSearchFor gates order search scoping: plain actors see only their own
// orders, elevated actors see anyone's.
func CanSearchFor(actor model.Actor, userID int64) bool {
	return HasElevatedRole(actor) || actor.ID == userID
}

// CanManageStock gates manual stock corrections: elevated roles only.
func CanManageStock(actor model.Actor) bool {
	return HasElevatedRole(actor)
}
