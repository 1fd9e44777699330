package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	orderapp "fitout/internal/application/order"
	"fitout/internal/domain/order"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// OrderHandler handles purchase orders and their lifecycle transitions.
// Item prices are snapshotted from the product catalog at creation time.
type OrderHandler struct {
	orderService *orderapp.Service
	logger       logger.Interface
}

func NewOrderHandler(orderService *orderapp.Service, logger logger.Interface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	ApartmentID string           `json:"apartment_id" binding:"required"`
	VendorID    string           `json:"vendor_id" binding:"required"`
	Currency    string           `json:"currency" binding:"required,len=3"`
	Notes       string           `json:"notes"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type ReplaceOrderItemsRequest struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetOrderNotesRequest struct {
	Notes string `json:"notes"`
}

type OrderItemResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	Number      string              `json:"number"`
	ApartmentID uint                `json:"apartment_id"`
	VendorID    uint                `json:"vendor_id"`
	Status      string              `json:"status"`
	Currency    string              `json:"currency"`
	TotalAmount int64               `json:"total_amount"`
	Notes       string              `json:"notes,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
		})
	}
	return &OrderResponse{
		ID:          o.SID(),
		Number:      o.Number(),
		ApartmentID: o.ApartmentID(),
		VendorID:    o.VendorID(),
		Status:      o.Status().String(),
		Currency:    o.Currency(),
		TotalAmount: o.TotalAmount(),
		Notes:       o.Notes(),
		Items:       items,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func toItemInputs(items []OrderItemInput) []orderapp.ItemInput {
	inputs := make([]orderapp.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, orderapp.ItemInput{
			ProductSID: item.ProductID,
			Quantity:   item.Quantity,
		})
	}
	return inputs
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create order", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.Create(c.Request.Context(), req.ApartmentID, req.VendorID, req.Currency, req.Notes, toItemInputs(req.Items))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toOrderResponse(o), "order created successfully")
}

func (h *OrderHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order retrieved successfully", toOrderResponse(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := order.Filter{
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("apartment_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			apartmentID := uint(n)
			filter.ApartmentID = &apartmentID
		}
	}
	if raw := c.Query("vendor_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			vendorID := uint(n)
			filter.VendorID = &vendorID
		}
	}
	if raw := c.Query("status"); raw != "" {
		status, err := order.NewOrderStatus(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

// ReplaceItems swaps the full item list of a draft order.
func (h *OrderHandler) ReplaceItems(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReplaceOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for replace order items", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.ReplaceItems(c.Request.Context(), sid, toItemInputs(req.Items))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order items updated successfully", toOrderResponse(o))
}

func (h *OrderHandler) Place(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.Place(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order placed successfully", toOrderResponse(o))
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change order status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	status, err := order.NewOrderStatus(req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.ChangeStatus(c.Request.Context(), sid, status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order status updated successfully", toOrderResponse(o))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.Cancel(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order cancelled successfully", toOrderResponse(o))
}

func (h *OrderHandler) SetNotes(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetOrderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set order notes", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	o, err := h.orderService.SetNotes(c.Request.Context(), sid, req.Notes)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order notes updated successfully", toOrderResponse(o))
}

// Delete removes a draft order. Placed orders must be cancelled instead.
func (h *OrderHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixOrder, "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
