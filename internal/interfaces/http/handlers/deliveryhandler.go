package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	deliveryapp "fitout/internal/application/delivery"
	"fitout/internal/domain/delivery"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// DeliveryHandler handles delivery scheduling and status tracking.
type DeliveryHandler struct {
	deliveryService *deliveryapp.Service
	logger          logger.Interface
}

func NewDeliveryHandler(deliveryService *deliveryapp.Service, logger logger.Interface) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

type CreateDeliveryRequest struct {
	OrderID       string    `json:"order_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Carrier       string    `json:"carrier"`
	TrackingCode  string    `json:"tracking_code"`
}

type ChangeDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleDeliveryRequest struct {
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

type SetDeliveryNotesRequest struct {
	Notes string `json:"notes"`
}

type DeliveryResponse struct {
	ID            string     `json:"id"`
	OrderID       uint       `json:"order_id"`
	Status        string     `json:"status"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	DeliveredDate *time.Time `json:"delivered_date,omitempty"`
	Carrier       string     `json:"carrier,omitempty"`
	TrackingCode  string     `json:"tracking_code,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDeliveryResponse(d *delivery.Delivery) *DeliveryResponse {
	return &DeliveryResponse{
		ID:            d.SID(),
		OrderID:       d.OrderID(),
		Status:        d.Status().String(),
		ScheduledDate: d.ScheduledDate(),
		DeliveredDate: d.DeliveredDate(),
		Carrier:       d.Carrier(),
		TrackingCode:  d.TrackingCode(),
		Notes:         d.Notes(),
		CreatedAt:     d.CreatedAt(),
		UpdatedAt:     d.UpdatedAt(),
	}
}

func (h *DeliveryHandler) Create(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create delivery", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.deliveryService.Create(c.Request.Context(), req.OrderID, req.ScheduledDate, req.Carrier, req.TrackingCode)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toDeliveryResponse(d), "delivery created successfully")
}

func (h *DeliveryHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixDelivery, "delivery")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.deliveryService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "delivery retrieved successfully", toDeliveryResponse(d))
}

func (h *DeliveryHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := delivery.Filter{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("order_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			orderID := uint(n)
			filter.OrderID = &orderID
		}
	}
	if raw := c.Query("status"); raw != "" {
		status, err := delivery.NewDeliveryStatus(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.Status = &status
	}

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		items = append(items, toDeliveryResponse(d))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *DeliveryHandler) ChangeStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixDelivery, "delivery")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change delivery status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	status, err := delivery.NewDeliveryStatus(req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.deliveryService.ChangeStatus(c.Request.Context(), sid, status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "delivery status updated successfully", toDeliveryResponse(d))
}

func (h *DeliveryHandler) Reschedule(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixDelivery, "delivery")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RescheduleDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reschedule delivery", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.deliveryService.Reschedule(c.Request.Context(), sid, req.ScheduledDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "delivery rescheduled successfully", toDeliveryResponse(d))
}

func (h *DeliveryHandler) SetNotes(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixDelivery, "delivery")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetDeliveryNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set delivery notes", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	d, err := h.deliveryService.SetNotes(c.Request.Context(), sid, req.Notes)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "delivery notes updated successfully", toDeliveryResponse(d))
}

func (h *DeliveryHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixDelivery, "delivery")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
