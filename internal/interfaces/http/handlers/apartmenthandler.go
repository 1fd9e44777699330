package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apartmentapp "fitout/internal/application/apartment"
	"fitout/internal/domain/apartment"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// ApartmentHandler handles CRUD and furnishing status transitions for apartments.
type ApartmentHandler struct {
	apartmentService *apartmentapp.Service
	logger           logger.Interface
}

func NewApartmentHandler(apartmentService *apartmentapp.Service, logger logger.Interface) *ApartmentHandler {
	return &ApartmentHandler{
		apartmentService: apartmentService,
		logger:           logger,
	}
}

type CreateApartmentRequest struct {
	ClientID string  `json:"client_id" binding:"required"`
	Address  string  `json:"address" binding:"required"`
	Floor    string  `json:"floor"`
	Unit     string  `json:"unit"`
	AreaSqm  float64 `json:"area_sqm" binding:"omitempty,gt=0"`
}

type UpdateApartmentRequest struct {
	Address string  `json:"address" binding:"required"`
	Floor   string  `json:"floor"`
	Unit    string  `json:"unit"`
	AreaSqm float64 `json:"area_sqm" binding:"omitempty,gt=0"`
	Notes   string  `json:"notes"`
}

type ChangeApartmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApartmentResponse struct {
	ID        string    `json:"id"`
	ClientID  uint      `json:"client_id"`
	Address   string    `json:"address"`
	Floor     string    `json:"floor,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	AreaSqm   float64   `json:"area_sqm,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toApartmentResponse(apt *apartment.Apartment) *ApartmentResponse {
	return &ApartmentResponse{
		ID:        apt.SID(),
		ClientID:  apt.ClientID(),
		Address:   apt.Address(),
		Floor:     apt.Floor(),
		Unit:      apt.Unit(),
		AreaSqm:   apt.AreaSqm(),
		Status:    apt.Status().String(),
		Notes:     apt.Notes(),
		CreatedAt: apt.CreatedAt(),
		UpdatedAt: apt.UpdatedAt(),
	}
}

func (h *ApartmentHandler) Create(c *gin.Context) {
	var req CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create apartment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	apt, err := h.apartmentService.Create(c.Request.Context(), req.ClientID, req.Address, req.Floor, req.Unit, req.AreaSqm)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toApartmentResponse(apt), "apartment created successfully")
}

func (h *ApartmentHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixApartment, "apartment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	apt, err := h.apartmentService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "apartment retrieved successfully", toApartmentResponse(apt))
}

func (h *ApartmentHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := apartment.Filter{
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("client_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			clientID := uint(n)
			filter.ClientID = &clientID
		}
	}
	if raw := c.Query("status"); raw != "" {
		status, err := apartment.NewFurnishingStatus(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.Status = &status
	}

	apartments, total, err := h.apartmentService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*ApartmentResponse, 0, len(apartments))
	for _, apt := range apartments {
		items = append(items, toApartmentResponse(apt))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ApartmentHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixApartment, "apartment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update apartment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	apt, err := h.apartmentService.Update(c.Request.Context(), sid, req.Address, req.Floor, req.Unit, req.AreaSqm, req.Notes)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "apartment updated successfully", toApartmentResponse(apt))
}

func (h *ApartmentHandler) ChangeStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixApartment, "apartment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeApartmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change apartment status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	status, err := apartment.NewFurnishingStatus(req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	apt, err := h.apartmentService.ChangeStatus(c.Request.Context(), sid, status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "apartment status updated successfully", toApartmentResponse(apt))
}

func (h *ApartmentHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixApartment, "apartment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.apartmentService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
