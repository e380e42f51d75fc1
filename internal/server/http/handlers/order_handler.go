package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/pkg/timeutil"
	"github.com/polkiloo/stockmart/internal/server/http/dto"
	"github.com/polkiloo/stockmart/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed order request"})
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, model.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	detail, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), lines)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderDetailResponse(*detail))
}

// Approve handles POST /api/v1/orders/:orderId/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	detail, err := h.facade.ApproveOrder(c.Request.Context(), CurrentActor(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderDetailResponse(*detail))
}

// Cancel handles POST /api/v1/orders/:orderId/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	detail, err := h.facade.CancelOrder(c.Request.Context(), CurrentActor(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderDetailResponse(*detail))
}

// Search handles GET /api/v1/orders.
func (h *OrderHandler) Search(c *gin.Context) {
	filter, ok := searchFilter(c)
	if !ok {
		return
	}

	details, err := h.facade.SearchOrders(c.Request.Context(), CurrentActor(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderDetailResponse, 0, len(details))
	for _, detail := range details {
		response = append(response, toOrderDetailResponse(detail))
	}
	c.JSON(http.StatusOK, response)
}

func orderIDParam(c *gin.Context) (int64, bool) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return orderID, true
}

func searchFilter(c *gin.Context) (usecase.SearchFilter, bool) {
	var filter usecase.SearchFilter

	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return filter, false
		}
		filter.UserID = &userID
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return filter, false
		}
		filter.Status = &status
	}

	if raw := c.Query("from"); raw != "" {
		from, err := timeutil.ParseInDisplay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from time"})
			return filter, false
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := timeutil.ParseInDisplay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to time"})
			return filter, false
		}
		filter.To = &to
	}

	return filter, true
}

func toOrderDetailResponse(detail usecase.OrderDetail) dto.OrderDetailResponse {
	items := make([]dto.OrderItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return dto.OrderDetailResponse{
		ID:            detail.ID,
		OwnerID:       detail.OwnerID,
		Status:        string(detail.Status),
		TotalAmount:   detail.TotalAmount,
		TotalQuantity: detail.TotalQuantity,
		CreatedAt:     timeutil.FormatDisplay(detail.CreatedAt),
		Items:         items,
	}
}
