package test

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/stockmart/internal/domain/errors"
	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, roles []model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Roles: append([]model.Role(nil), roles...)}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize pool-scoped order access.
type OrderRepositoryStub struct {
	CreateFn    func(context.Context, *model.Order) (*model.Order, error)
	GetDetailFn func(context.Context, int64) (*model.Order, error)
	SearchFn    func(context.Context, repository.OrderFilter) ([]model.Order, error)

	Created []*model.Order
	Orders  []model.Order
	Filters []repository.OrderFilter
	NextID  int64
}

// Create tracks invocations and assigns identifiers sequentially.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	saved := model.RestoreOrder(s.NextID, order.UserID, order.Status, order.CreatedAt, order.Lines())
	s.NextID++
	return saved, nil
}

// GetDetail returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetDetail(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetDetailFn != nil {
		return s.GetDetailFn(ctx, orderID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Search records the filter and returns configured orders.
func (s *OrderRepositoryStub) Search(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	s.Filters = append(s.Filters, filter)
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter)
	}
	return s.Orders, nil
}

// CatalogStub resolves products from a fixed map.
type CatalogStub struct {
	Products map[int64]model.Product
	Err      error
}

// GetByID returns the configured product or not found.
func (s CatalogStub) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[productID]; ok {
		return &product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByIDs returns only the products present in the configured map.
func (s CatalogStub) ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	found := make(map[int64]model.Product, len(productIDs))
	for _, id := range productIDs {
		if product, ok := s.Products[id]; ok {
			found[id] = product
		}
	}
	return found, nil
}

// LedgerStub keeps stock quantities in a map and records every operation in
// call order, so tests can assert lock ordering and atomicity.
type LedgerStub struct {
	Stock map[int64]int
	Ops   []string

	LockErr      map[int64]error
	DecrementErr map[int64]error
	IncrementErr map[int64]error
}

// NewLedgerStub seeds the ledger with initial quantities.
func NewLedgerStub(stock map[int64]int) *LedgerStub {
	quantities := make(map[int64]int, len(stock))
	for id, qty := range stock {
		quantities[id] = qty
	}
	return &LedgerStub{Stock: quantities}
}

// LockForUpdate records the lock and returns the current record.
func (s *LedgerStub) LockForUpdate(ctx context.Context, productID int64) (*model.StockRecord, error) {
	s.Ops = append(s.Ops, fmt.Sprintf("lock:%d", productID))
	if err := s.LockErr[productID]; err != nil {
		return nil, err
	}
	qty, ok := s.Stock[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.StockRecord{ProductID: productID, Quantity: qty}, nil
}

// DecrementIfSufficient applies the decrement against the in-memory map.
func (s *LedgerStub) DecrementIfSufficient(ctx context.Context, productID int64, amount int) error {
	s.Ops = append(s.Ops, fmt.Sprintf("dec:%d:%d", productID, amount))
	if err := s.DecrementErr[productID]; err != nil {
		return err
	}
	qty, ok := s.Stock[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if qty < amount {
		return domainErrors.ErrInsufficientStock
	}
	s.Stock[productID] = qty - amount
	return nil
}

// Increment restores quantity in the in-memory map.
func (s *LedgerStub) Increment(ctx context.Context, productID int64, amount int) error {
	s.Ops = append(s.Ops, fmt.Sprintf("inc:%d:%d", productID, amount))
	if err := s.IncrementErr[productID]; err != nil {
		return err
	}
	if _, ok := s.Stock[productID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.Stock[productID] += amount
	return nil
}

// AdjustByDelta applies a manual correction rejecting negative results.
func (s *LedgerStub) AdjustByDelta(ctx context.Context, productID int64, delta int) (*model.StockRecord, error) {
	s.Ops = append(s.Ops, fmt.Sprintf("adj:%d:%d", productID, delta))
	qty, ok := s.Stock[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if qty+delta < 0 {
		return nil, domainErrors.ErrInsufficientStock
	}
	s.Stock[productID] = qty + delta
	return &model.StockRecord{ProductID: productID, Quantity: s.Stock[productID]}, nil
}

// SetAbsolute overwrites the quantity rejecting negative values.
func (s *LedgerStub) SetAbsolute(ctx context.Context, productID int64, quantity int) (*model.StockRecord, error) {
	s.Ops = append(s.Ops, fmt.Sprintf("set:%d:%d", productID, quantity))
	if quantity < 0 {
		return nil, domainErrors.ErrValidation
	}
	if _, ok := s.Stock[productID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Stock[productID] = quantity
	return &model.StockRecord{ProductID: productID, Quantity: quantity}, nil
}

// StockReaderStub serves plain stock reads from a fixed map.
type StockReaderStub struct {
	Stock map[int64]int
	Err   error
}

// Get returns the configured quantity or not found.
func (s StockReaderStub) Get(ctx context.Context, productID int64) (*model.StockRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if qty, ok := s.Stock[productID]; ok {
		return &model.StockRecord{ProductID: productID, Quantity: qty}, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderTxStub is the transaction-scoped order view backed by stored orders.
type OrderTxStub struct {
	GetForUpdateFn func(context.Context, int64) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error

	Orders  map[int64]*model.Order
	Ops     *[]string
	Updates []model.StatusChange
}

// GetForUpdate records the row lock and returns the stored order.
func (s *OrderTxStub) GetForUpdate(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.Ops != nil {
		*s.Ops = append(*s.Ops, fmt.Sprintf("order-lock:%d", orderID))
	}
	if s.GetForUpdateFn != nil {
		return s.GetForUpdateFn(ctx, orderID)
	}
	if order, ok := s.Orders[orderID]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus records status writes.
func (s *OrderTxStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.Ops != nil {
		*s.Ops = append(*s.Ops, fmt.Sprintf("order-status:%d:%s", orderID, status))
	}
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.Updates = append(s.Updates, model.StatusChange{OrderID: orderID, To: status})
	return nil
}

// TxStub bundles an order view and a ledger into one transaction scope.
type TxStub struct {
	OrderTx *OrderTxStub
	Ledger  *LedgerStub
}

func (s TxStub) Orders() repository.OrderTxRepository { return s.OrderTx }
func (s TxStub) Stocks() repository.StockLedger       { return s.Ledger }

// UnitOfWorkStub runs the callback against one shared TxStub and snapshots
// the ledger before each transaction so failures can be rolled back.
type UnitOfWorkStub struct {
	Tx       TxStub
	BeginErr error
	Calls    int
}

// NewUnitOfWorkStub wires a unit of work over the given order map and stock.
func NewUnitOfWorkStub(orders map[int64]*model.Order, stock map[int64]int) *UnitOfWorkStub {
	ledger := NewLedgerStub(stock)
	orderTx := &OrderTxStub{Orders: orders, Ops: &ledger.Ops}
	return &UnitOfWorkStub{Tx: TxStub{OrderTx: orderTx, Ledger: ledger}}
}

// WithinTransaction executes fn, restoring stock quantities when it fails.
func (s *UnitOfWorkStub) WithinTransaction(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.Calls++
	if s.BeginErr != nil {
		return s.BeginErr
	}

	snapshot := make(map[int64]int, len(s.Tx.Ledger.Stock))
	for id, qty := range s.Tx.Ledger.Stock {
		snapshot[id] = qty
	}

	if err := fn(s.Tx); err != nil {
		s.Tx.Ledger.Stock = snapshot
		return err
	}
	return nil
}

// OrderLogRecorderStub collects recorded status changes.
type OrderLogRecorderStub struct {
	RecordFn func(context.Context, model.StatusChange) error
	Changes  []model.StatusChange
}

// Record stores the change or delegates to the override.
func (s *OrderLogRecorderStub) Record(ctx context.Context, change model.StatusChange) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, change)
	}
	s.Changes = append(s.Changes, change)
	return nil
}
