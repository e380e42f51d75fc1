package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/stockmart/internal/domain/model"
	"github.com/polkiloo/stockmart/internal/server/http/dto"
)

// StockHandler manages manual stock administration endpoints.
type StockHandler struct {
	facade StockFacade
}

// NewStockHandler constructs StockHandler.
func NewStockHandler(facade StockFacade) *StockHandler {
	return &StockHandler{facade: facade}
}

// Adjust handles POST /api/v1/stocks/adjust.
func (h *StockHandler) Adjust(c *gin.Context) {
	var req dto.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed stock adjust request"})
		return
	}

	record, err := h.facade.AdjustStock(c.Request.Context(), CurrentActor(c), req.ProductID, req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockResponse(record))
}

// Set handles PUT /api/v1/stocks.
func (h *StockHandler) Set(c *gin.Context) {
	var req dto.StockSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed stock set request"})
		return
	}

	record, err := h.facade.SetStock(c.Request.Context(), CurrentActor(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockResponse(record))
}

// Get handles GET /api/v1/stocks/:productId.
func (h *StockHandler) Get(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	record, err := h.facade.GetStock(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockResponse(record))
}

func toStockResponse(record *model.StockRecord) dto.StockResponse {
	return dto.StockResponse{ProductID: record.ProductID, Quantity: record.Quantity}
}
