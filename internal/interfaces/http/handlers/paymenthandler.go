package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	paymentapp "fitout/internal/application/payment"
	"fitout/internal/domain/payment"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// PaymentHandler handles payment records and their state machine. Amounts
// are minor units in the order currency.
type PaymentHandler struct {
	paymentService *paymentapp.Service
	logger         logger.Interface
}

func NewPaymentHandler(paymentService *paymentapp.Service, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

type CreatePaymentRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency" binding:"required,len=3"`
	Method   string `json:"method" binding:"required"`
}

type MarkPaymentPaidRequest struct {
	ExternalRef string `json:"external_ref"`
}

type PaymentResponse struct {
	ID          string     `json:"id"`
	OrderID     uint       `json:"order_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Method      string     `json:"method"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ExternalRef string     `json:"external_ref,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.SID(),
		OrderID:     p.OrderID(),
		Amount:      p.Amount(),
		Currency:    p.Currency(),
		Method:      p.Method().String(),
		Status:      p.Status().String(),
		PaidAt:      p.PaidAt(),
		ExternalRef: p.ExternalRef(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create payment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	method, err := payment.NewPaymentMethod(req.Method)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.Create(c.Request.Context(), req.OrderID, req.Amount, req.Currency, method)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toPaymentResponse(p), "payment created successfully")
}

func (h *PaymentHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment retrieved successfully", toPaymentResponse(p))
}

func (h *PaymentHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := payment.Filter{
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
		status, err := payment.NewPaymentStatus(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("method"); raw != "" {
		method, err := payment.NewPaymentMethod(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.Method = &method
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MarkPaymentPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for mark payment paid", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.MarkPaid(c.Request.Context(), sid, req.ExternalRef)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment marked as paid", toPaymentResponse(p))
}

func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.MarkFailed(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment marked as failed", toPaymentResponse(p))
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.Refund(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment refunded successfully", toPaymentResponse(p))
}

// Retry moves a failed payment back to pending for another attempt.
func (h *PaymentHandler) Retry(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.paymentService.Retry(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment retry initiated", toPaymentResponse(p))
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPayment, "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
