package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
	testhelpers "github.com/polkiloo/stockmart/internal/test"
	"github.com/polkiloo/stockmart/internal/usecase"
)

func TestStockAdjustRequiresElevatedRole(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{1: 5})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	if _, err := uc.Adjust(context.Background(), buyer, 1, 3); !errors.Is(err, domainErrors.ErrAuthorizationDenied) {
		t.Fatalf("expected authorization denial, got %v", err)
	}
	if uow.Calls != 0 {
		t.Fatal("denied adjustment must not open a transaction")
	}
}

func TestStockAdjustAppliesDeltaUnderLock(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{7: 5})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	record, err := uc.Adjust(context.Background(), manager, 7, -2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 3 {
		t.Fatalf("unexpected quantity %d", record.Quantity)
	}

	ops := uow.Tx.Ledger.Ops
	if len(ops) != 2 || ops[0] != "lock:7" || ops[1] != "adj:7:-2" {
		t.Fatalf("unexpected ops %v", ops)
	}
}

func TestStockAdjustRejectsNegativeResult(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{7: 1})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	if _, err := uc.Adjust(context.Background(), manager, 7, -5); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if uow.Tx.Ledger.Stock[7] != 1 {
		t.Fatalf("failed adjustment mutated stock: %v", uow.Tx.Ledger.Stock)
	}
}

func TestStockSetValidatesBeforeLocking(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{7: 1})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	if _, err := uc.Set(context.Background(), manager, 7, -1); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if uow.Calls != 0 {
		t.Fatal("invalid quantity must not open a transaction")
	}
}

func TestStockSetOverwritesQuantity(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{7: 1})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	record, err := uc.Set(context.Background(), manager, 7, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 40 {
		t.Fatalf("unexpected quantity %d", record.Quantity)
	}
	if uow.Tx.Ledger.Stock[7] != 40 {
		t.Fatalf("stock not overwritten: %v", uow.Tx.Ledger.Stock)
	}
}

func TestStockGetReadsWithoutTransaction(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, nil)
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{Stock: map[int64]int{3: 12}})

	record, err := uc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 12 {
		t.Fatalf("unexpected quantity %d", record.Quantity)
	}
	if uow.Calls != 0 {
		t.Fatal("plain read must not open a transaction")
	}

	if _, err := uc.Get(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStockSetMissingProduct(t *testing.T) {
	uow := testhelpers.NewUnitOfWorkStub(nil, map[int64]int{})
	uc := usecase.NewStockUseCase(uow, testhelpers.StockReaderStub{})

	if _, err := uc.Set(context.Background(), model.Actor{ID: 1, Roles: []model.Role{model.RoleAdmin}}, 404, 5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
