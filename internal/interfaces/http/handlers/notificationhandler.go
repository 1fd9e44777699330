package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	notificationapp "fitout/internal/application/notification"
	"fitout/internal/domain/notification"
	"fitout/internal/shared/constants"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// NotificationHandler serves the authenticated user's in-app notifications.
type NotificationHandler struct {
	notificationService *notificationapp.Service
	logger              logger.Interface
}

func NewNotificationHandler(notificationService *notificationapp.Service, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

type NotificationResponse struct {
	ID             uint       `json:"id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	ContentHTML    string     `json:"content_html,omitempty"`
	RelatedIssueID *uint      `json:"related_issue_id,omitempty"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func toNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:             n.ID(),
		Type:           n.Type().String(),
		Title:          n.Title(),
		Content:        n.Content(),
		ContentHTML:    n.ContentHTML(),
		RelatedIssueID: n.RelatedIssueID(),
		IsRead:         n.IsRead(),
		ReadAt:         n.ReadAt(),
		CreatedAt:      n.CreatedAt(),
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, false
	}
	return userID.(uint), true
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pagination := utils.ParsePagination(c)

	filter := notification.Filter{
		UserID:    &userID,
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("unread"); raw != "" {
		unread := raw == "true"
		filter.Unread = &unread
	}

	notifications, total, err := h.notificationService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, toNotificationResponse(n))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "unread count retrieved successfully", UnreadCountResponse{Count: count})
}

// MarkRead marks one notification as read. Users can only touch their own.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	raw := c.Param("id")
	notificationID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || notificationID == 0 {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid notification ID"))
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), uint(notificationID), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "all notifications marked as read", nil)
}
