package dto

// StockAdjustRequest applies a signed delta to a product's stock.
type StockAdjustRequest struct {
	ProductID int64 `json:"productId"`
	Delta     int   `json:"delta"`
}

// StockSetRequest overwrites a product's stock quantity.
type StockSetRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// StockResponse reports the quantity after the operation.
type StockResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
