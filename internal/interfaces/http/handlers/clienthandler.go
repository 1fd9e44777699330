package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	clientapp "fitout/internal/application/client"
	"fitout/internal/domain/client"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// ClientHandler handles CRUD for property-owner clients.
type ClientHandler struct {
	clientService *clientapp.Service
	logger        logger.Interface
}

func NewClientHandler(clientService *clientapp.Service, logger logger.Interface) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toClientResponse(cl *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:        cl.SID(),
		Name:      cl.Name(),
		Email:     cl.Email(),
		Phone:     cl.Phone(),
		Notes:     cl.Notes(),
		CreatedAt: cl.CreatedAt(),
		UpdatedAt: cl.UpdatedAt(),
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create client", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cl, err := h.clientService.Create(c.Request.Context(), req.Name, req.Email, req.Phone, req.Notes)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toClientResponse(cl), "client created successfully")
}

func (h *ClientHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixClient, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cl, err := h.clientService.Get(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client retrieved successfully", toClientResponse(cl))
}

func (h *ClientHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := client.Filter{
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	clients, total, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*ClientResponse, 0, len(clients))
	for _, cl := range clients {
		items = append(items, toClientResponse(cl))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ClientHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixClient, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update client", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cl, err := h.clientService.Update(c.Request.Context(), sid, req.Name, req.Email, req.Phone, req.Notes)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client updated successfully", toClientResponse(cl))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixClient, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), sid); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
