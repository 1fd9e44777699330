package issue

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitout/internal/application/issue/usecases"
	"fitout/internal/shared/constants"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

// Handler handles vendor issues and the AI conversation endpoints.
type Handler struct {
	createUseCase         usecases.CreateIssueExecutor
	updateUseCase         usecases.UpdateIssueExecutor
	changePriorityUseCase usecases.ChangePriorityExecutor
	closeUseCase          usecases.CloseIssueExecutor
	getUseCase            usecases.GetIssueExecutor
	listUseCase           usecases.ListIssuesExecutor
	getThreadUseCase      usecases.GetThreadExecutor
	startUseCase          usecases.StartConversationExecutor
	bulkStartUseCase      usecases.BulkStartConversationsExecutor
	draftReplyUseCase     usecases.DraftReplyExecutor
	approveReplyUseCase   usecases.ApproveReplyExecutor
	rejectReplyUseCase    usecases.RejectReplyExecutor
	sendManualUseCase     usecases.SendManualMessageExecutor
	logger                logger.Interface
}

func NewHandler(
	createUC usecases.CreateIssueExecutor,
	updateUC usecases.UpdateIssueExecutor,
	changePriorityUC usecases.ChangePriorityExecutor,
	closeUC usecases.CloseIssueExecutor,
	getUC usecases.GetIssueExecutor,
	listUC usecases.ListIssuesExecutor,
	getThreadUC usecases.GetThreadExecutor,
	startUC usecases.StartConversationExecutor,
	bulkStartUC usecases.BulkStartConversationsExecutor,
	draftReplyUC usecases.DraftReplyExecutor,
	approveReplyUC usecases.ApproveReplyExecutor,
	rejectReplyUC usecases.RejectReplyExecutor,
	sendManualUC usecases.SendManualMessageExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUseCase:         createUC,
		updateUseCase:         updateUC,
		changePriorityUseCase: changePriorityUC,
		closeUseCase:          closeUC,
		getUseCase:            getUC,
		listUseCase:           listUC,
		getThreadUseCase:      getThreadUC,
		startUseCase:          startUC,
		bulkStartUseCase:      bulkStartUC,
		draftReplyUseCase:     draftReplyUC,
		approveReplyUseCase:   approveReplyUC,
		rejectReplyUseCase:    rejectReplyUC,
		sendManualUseCase:     sendManualUC,
		logger:                logger,
	}
}

func (h *Handler) parseIssueSID(c *gin.Context) (string, bool) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixIssue, "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", false
	}
	return sid, true
}

func (h *Handler) parseMessageID(c *gin.Context) (uint, bool) {
	raw := c.Param("message_id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid message ID"))
		return 0, false
	}
	return uint(n), true
}

func (h *Handler) currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, false
	}
	return userID.(uint), true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]usecases.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecases.ItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			IssueTags:   item.IssueTags,
			Description: item.Description,
			ImageRef:    item.ImageRef,
		})
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateIssueCommand{
		ApartmentSID: req.ApartmentID,
		VendorSID:    req.VendorID,
		ProductSID:   req.ProductID,
		OrderSID:     req.OrderID,
		IssueType:    req.IssueType,
		Description:  req.Description,
		Impact:       req.Impact,
		Priority:     req.Priority,
		Items:        items,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "issue created successfully")
}

func (h *Handler) Get(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	iss, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetIssueQuery{SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue retrieved successfully", iss)
}

func (h *Handler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListIssuesQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("vendor_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			vendorID := uint(n)
			query.VendorID = &vendorID
		}
	}
	if raw := c.Query("apartment_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			apartmentID := uint(n)
			query.ApartmentID = &apartmentID
		}
	}
	if raw := c.Query("ai_activated"); raw != "" {
		activated := raw == "true"
		query.AIActivated = &activated
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.Total, pagination.Page, pagination.PageSize)
}

func (h *Handler) Update(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update issue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	iss, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateIssueCommand{
		SID:         sid,
		IssueType:   req.IssueType,
		Description: req.Description,
		Impact:      req.Impact,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue updated successfully", iss)
}

func (h *Handler) ChangePriority(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change priority", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	iss, err := h.changePriorityUseCase.Execute(c.Request.Context(), usecases.ChangePriorityCommand{
		SID:      sid,
		Priority: req.Priority,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue priority updated successfully", iss)
}

func (h *Handler) Close(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	// The close note is optional, so an empty body is fine.
	var req CloseIssueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for close issue", "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	iss, err := h.closeUseCase.Execute(c.Request.Context(), usecases.CloseIssueCommand{
		SID:      sid,
		Note:     req.Note,
		ClosedBy: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue closed successfully", iss)
}

// GetThread returns the issue with its full conversation log, oldest first.
func (h *Handler) GetThread(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	thread, err := h.getThreadUseCase.Execute(c.Request.Context(), usecases.GetThreadQuery{SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "thread retrieved successfully", thread)
}

// StartConversation activates AI handling and sends the initial vendor report.
func (h *Handler) StartConversation(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	result, err := h.startUseCase.Execute(c.Request.Context(), usecases.StartConversationCommand{IssueSID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "conversation started successfully", result)
}

// BulkStartConversations activates AI handling on many issues. Failures on
// individual issues are reported per item, not as a request error.
func (h *Handler) BulkStartConversations(c *gin.Context) {
	var req BulkStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bulk start", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkStartUseCase.Execute(c.Request.Context(), usecases.BulkStartConversationsCommand{
		IssueSIDs: req.IssueIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "bulk activation completed", result)
}

// DraftReply produces a fresh AI reply draft for the thread. The draft is
// always queued for approval.
func (h *Handler) DraftReply(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	result, err := h.draftReplyUseCase.Execute(c.Request.Context(), usecases.DraftReplyCommand{IssueSID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reply draft created", result)
}

// ApproveReply sends a pending AI draft, optionally with an edited body.
func (h *Handler) ApproveReply(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	messageID, ok := h.parseMessageID(c)
	if !ok {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req ApproveReplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for approve reply", "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.approveReplyUseCase.Execute(c.Request.Context(), usecases.ApproveReplyCommand{
		IssueSID:   sid,
		MessageID:  messageID,
		ApproverID: userID,
		EditedBody: req.EditedBody,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reply approved and sent", result)
}

func (h *Handler) RejectReply(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	messageID, ok := h.parseMessageID(c)
	if !ok {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req RejectReplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for reject reply", "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.rejectReplyUseCase.Execute(c.Request.Context(), usecases.RejectReplyCommand{
		IssueSID:   sid,
		MessageID:  messageID,
		RejectorID: userID,
		Reason:     req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reply rejected", result)
}

// SendMessage delivers an operator-written email on the issue thread.
func (h *Handler) SendMessage(c *gin.Context) {
	sid, ok := h.parseIssueSID(c)
	if !ok {
		return
	}

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.sendManualUseCase.Execute(c.Request.Context(), usecases.SendManualMessageCommand{
		IssueSID: sid,
		SenderID: userID,
		Subject:  req.Subject,
		Body:     req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "message sent successfully", result)
}
