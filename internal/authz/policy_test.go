package authz

import (
	"testing"
	"time"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

func orderWithStatus(ownerID int64, status model.OrderStatus) *model.Order {
	return model.RestoreOrder(1, ownerID, status, time.Now(), []model.OrderLine{{ProductID: 1, Quantity: 1}})
}

var (
	plainOwner = model.Actor{ID: 10, Roles: []model.Role{model.RoleUser}}
	stranger   = model.Actor{ID: 11, Roles: []model.Role{model.RoleUser}}
	manager    = model.Actor{ID: 20, Roles: []model.Role{model.RoleManager}}
	admin      = model.Actor{ID: 21, Roles: []model.Role{model.RoleAdmin}}
)

func TestHasElevatedRole(t *testing.T) {
	if HasElevatedRole(plainOwner) {
		t.Fatal("plain user is not elevated")
	}
	if !HasElevatedRole(manager) || !HasElevatedRole(admin) {
		t.Fatal("manager and admin are elevated")
	}
}

func TestCanApprove(t *testing.T) {
	if CanApprove(plainOwner) {
		t.Fatal("plain user must not approve")
	}
	if !CanApprove(manager) || !CanApprove(admin) {
		t.Fatal("elevated roles approve")
	}
}

func TestCanCancelPending(t *testing.T) {
	pending := orderWithStatus(plainOwner.ID, model.OrderStatusPending)

	if !CanCancel(plainOwner, pending) {
		t.Fatal("owner cancels own pending order")
	}
	if CanCancel(stranger, pending) {
		t.Fatal("stranger must not cancel foreign pending order")
	}
	if !CanCancel(manager, pending) {
		t.Fatal("manager cancels any pending order")
	}
}

func TestCanCancelApproved(t *testing.T) {
	approved := orderWithStatus(plainOwner.ID, model.OrderStatusApproved)

	if CanCancel(plainOwner, approved) {
		t.Fatal("owner without elevation must not cancel approved order")
	}
	if !CanCancel(manager, approved) || !CanCancel(admin, approved) {
		t.Fatal("elevated roles cancel approved orders")
	}
}

func TestCanCancelTerminalAndNil(t *testing.T) {
	canceled := orderWithStatus(plainOwner.ID, model.OrderStatusCanceled)
	if CanCancel(admin, canceled) {
		t.Fatal("canceled order is terminal")
	}
	if CanCancel(admin, nil) {
		t.Fatal("nil order never passes")
	}
}

func TestCanSearchFor(t *testing.T) {
	if !CanSearchFor(plainOwner, plainOwner.ID) {
		t.Fatal("actor searches own orders")
	}
	if CanSearchFor(plainOwner, stranger.ID) {
		t.Fatal("plain actor must not search foreign orders")
	}
	if !CanSearchFor(manager, stranger.ID) {
		t.Fatal("elevated actor searches anyone")
	}
}

func TestCanManageStock(t *testing.T) {
	if CanManageStock(plainOwner) {
		t.Fatal("plain user must not manage stock")
	}
	if !CanManageStock(manager) || !CanManageStock(admin) {
		t.Fatal("elevated roles manage stock")
	}
}
