package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	productapp "fitout/internal/application/product"
	"fitout/internal/domain/product"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// ProductHandler handles the vendor product catalog. Prices are minor units.
type ProductHandler struct {
	productService *productapp.Service
	logger         logger.Interface
}

func NewProductHandler(productService *productapp.Service, logger logger.Interface) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

type CreateProductRequest struct {
	VendorID     string `json:"vendor_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	UnitPrice    int64  `json:"unit_price" binding:"required,gt=0"`
	Currency     string `json:"currency" binding:"required,len=3"`
	LeadTimeDays int    `json:"lead_time_days" binding:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	UnitPrice    int64  `json:"unit_price" binding:"required,gt=0"`
	Currency     string `json:"currency" binding:"required,len=3"`
	LeadTimeDays int    `json:"lead_time_days" binding:"omitempty,min=0"`
}

type SetProductActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type ProductResponse struct {
	ID           string    `json:"id"`
	VendorID     uint      `json:"vendor_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku,omitempty"`
	Category     string    `json:"category,omitempty"`
	UnitPrice    int64     `json:"unit_price"`
	Currency     string    `json:"currency"`
	LeadTimeDays int       `json:"lead_time_days"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.SID(),
		VendorID:     p.VendorID(),
		Name:         p.Name(),
		SKU:          p.SKU(),
		Category:     p.Category(),
		UnitPrice:    p.UnitPrice(),
		Currency:     p.Currency(),
		LeadTimeDays: p.LeadTimeDays(),
		IsActive:     p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create product", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.productService.Create(c.Request.Context(), req.VendorID, req.Name, req.SKU, req.Category, req.UnitPrice, req.Currency, req.LeadTimeDays)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toProductResponse(p), "product created successfully")
}

func (h *ProductHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixProduct, "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.productService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product retrieved successfully", toProductResponse(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := product.Filter{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("vendor_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			vendorID := uint(n)
			filter.VendorID = &vendorID
		}
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixProduct, "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update product", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.productService.Update(c.Request.Context(), sid, req.Name, req.SKU, req.Category, req.UnitPrice, req.Currency, req.LeadTimeDays)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product updated successfully", toProductResponse(p))
}

func (h *ProductHandler) SetActive(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixProduct, "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetProductActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set product active", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.productService.SetActive(c.Request.Context(), sid, *req.Active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product updated successfully", toProductResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixProduct, "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
