package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// PurchaseHandler manages purchase endpoints.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Purchase handles POST /api/purchases.
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.facade.PurchaseOne(c.Request.Context(), CurrentToken(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success("product purchased successfully", toPurchaseResponse(*result)))
}

// Bulk handles POST /api/purchases/bulk.
func (h *PurchaseHandler) Bulk(c *gin.Context) {
	var req dto.BulkPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	items := make([]model.PurchaseItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, model.PurchaseItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	results, err := h.facade.PurchaseMany(c.Request.Context(), CurrentToken(c), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success("products purchased successfully", toPurchaseResponses(results)))
}

// List handles GET /api/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	results, err := h.facade.History(c.Request.Context(), CurrentToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("purchased products retrieved successfully", toPurchaseResponses(results)))
}

func toPurchaseResponses(results []model.LineResult) []dto.PurchaseResponse {
	resp := make([]dto.PurchaseResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, toPurchaseResponse(r))
	}
	return resp
}

func toPurchaseResponse(r model.LineResult) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:                 r.LineID,
		OrderID:            r.OrderID,
		ProductID:          r.ProductID,
		ProductTitle:       r.Product.Title,
		ProductDescription: r.Product.Description,
		ProductPrice:       r.Product.Price,
		ProductURL:         r.Product.ImageURL,
		Quantity:           r.Quantity,
		PurchasedAt:        r.PurchasedAt,
	}
}
