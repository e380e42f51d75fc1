package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Products() ProductRepository
	Stocks() StockReader
	OrderLogs() OrderLogRepository
}

// Tx is the transaction-scoped view of the repositories that mutate shared
// state. Everything done through it commits or rolls back together.
type Tx interface {
	Orders() OrderTxRepository
	Stocks() StockLedger
}

// UnitOfWork runs a function inside one storage transaction. The service
// layer owns transaction boundaries; storage owns the SQL.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(tx Tx) error) error
}
