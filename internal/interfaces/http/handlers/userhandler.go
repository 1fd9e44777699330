package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	userapp "fitout/internal/application/user"
	"fitout/internal/domain/user"
	"fitout/internal/shared/authorization"
	"fitout/internal/shared/constants"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// UserHandler handles user administration. All routes are admin-only except
// profile and password changes, which act on the authenticated user.
type UserHandler struct {
	userService *userapp.Service
	logger      logger.Interface
}

func NewUserHandler(userService *userapp.Service, logger logger.Interface) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin manager readonly"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager readonly"`
}

type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type UserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID(),
		Email:       u.Email(),
		Name:        u.Name(),
		Role:        string(u.Role()),
		IsActive:    u.IsActive(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

func parseUserIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, apperrors.NewValidationError("invalid user ID")
	}
	return uint(n), nil
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	usr, err := h.userService.Create(c.Request.Context(), req.Email, req.Name, req.Password, authorization.ParseUserRole(req.Role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(usr), "user created successfully")
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	usr, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user retrieved successfully", toUserResponse(usr))
}

func (h *UserHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	filter := user.Filter{
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

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}

	utils.ListSuccessResponse(c, items, total, pagination.Page, pagination.PageSize)
}

// UpdateProfile changes the authenticated user's display name.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	usr, err := h.userService.UpdateProfile(c.Request.Context(), userID.(uint), req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated successfully", toUserResponse(usr))
}

// ChangePassword verifies the current password before applying the new one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change password", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID.(uint), req.CurrentPassword, req.NewPassword); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed successfully", nil)
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change role", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	usr, err := h.userService.ChangeRole(c.Request.Context(), userID, authorization.ParseUserRole(req.Role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role changed successfully", toUserResponse(usr))
}

func (h *UserHandler) SetActive(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set active", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	usr, err := h.userService.SetActive(c.Request.Context(), userID, *req.Active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated successfully", toUserResponse(usr))
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
