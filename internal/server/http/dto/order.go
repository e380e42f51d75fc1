package dto

// OrderCreateRequest is the body of POST /api/v1/orders.
type OrderCreateRequest struct {
	Items []OrderItemLine `json:"items"`
}

// OrderItemLine is one requested product line.
type OrderItemLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderDetailResponse is the detail view of an order. Totals reflect current
// catalog prices; createdAt is rendered in the display timezone.
type OrderDetailResponse struct {
	ID            int64               `json:"id"`
	OwnerID       int64               `json:"ownerId"`
	Status        string              `json:"status"`
	TotalAmount   int                 `json:"totalAmount"`
	TotalQuantity int                 `json:"totalQuantity"`
	CreatedAt     string              `json:"createdAt"`
	Items         []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"lineTotal"`
}
