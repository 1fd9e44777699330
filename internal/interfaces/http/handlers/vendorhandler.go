package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	vendorapp "fitout/internal/application/vendor"
	"fitout/internal/domain/vendor"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// VendorHandler handles CRUD, rating and activation for furniture vendors.
type VendorHandler struct {
	vendorService *vendorapp.Service
	logger        logger.Interface
}

func NewVendorHandler(vendorService *vendorapp.Service, logger logger.Interface) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

type CreateVendorRequest struct {
	CompanyName string   `json:"company_name" binding:"required"`
	ContactName string   `json:"contact_name"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone"`
	Categories  []string `json:"categories"`
}

type UpdateVendorRequest struct {
	CompanyName string   `json:"company_name" binding:"required"`
	ContactName string   `json:"contact_name"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone"`
	Categories  []string `json:"categories"`
}

type SetVendorRatingRequest struct {
	Rating float64 `json:"rating" binding:"min=0,max=5"`
}

type SetVendorActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type VendorResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Rating      float64   `json:"rating"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toVendorResponse(v *vendor.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:          v.SID(),
		CompanyName: v.CompanyName(),
		ContactName: v.ContactName(),
		Email:       v.Email(),
		Phone:       v.Phone(),
		Categories:  v.Categories(),
		Rating:      v.Rating(),
		IsActive:    v.IsActive(),
		CreatedAt:   v.CreatedAt(),
		UpdatedAt:   v.UpdatedAt(),
	}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create vendor", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	v, err := h.vendorService.Create(c.Request.Context(), req.CompanyName, req.ContactName, req.Email, req.Phone, req.Categories)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toVendorResponse(v), "vendor created successfully")
}

func (h *VendorHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixVendor, "vendor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	v, err := h.vendorService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "vendor retrieved successfully", toVendorResponse(v))
}

func (h *VendorHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := vendor.Filter{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	vendors, total, err := h.vendorService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, toVendorResponse(v))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *VendorHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixVendor, "vendor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update vendor", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	v, err := h.vendorService.Update(c.Request.Context(), sid, req.CompanyName, req.ContactName, req.Email, req.Phone, req.Categories)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "vendor updated successfully", toVendorResponse(v))
}

func (h *VendorHandler) SetRating(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixVendor, "vendor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetVendorRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set vendor rating", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	v, err := h.vendorService.SetRating(c.Request.Context(), sid, req.Rating)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "vendor rating updated successfully", toVendorResponse(v))
}

func (h *VendorHandler) SetActive(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixVendor, "vendor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetVendorActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set vendor active", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	v, err := h.vendorService.SetActive(c.Request.Context(), sid, *req.Active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "vendor updated successfully", toVendorResponse(v))
}

func (h *VendorHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixVendor, "vendor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
