package model

// StockRecord holds the available quantity for a single product. Quantity is
// never negative; rows are mutated only while an exclusive row lock is held.
type StockRecord struct {
	ProductID int64
	Quantity  int
}
