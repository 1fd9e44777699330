package issue

type IssueItemInput struct {
	ProductName string   `json:"product_name" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required,gt=0"`
	IssueTags   []string `json:"issue_tags"`
	Description string   `json:"description"`
	ImageRef    string   `json:"image_ref"`
}

type CreateIssueRequest struct {
	ApartmentID string           `json:"apartment_id" binding:"required"`
	VendorID    string           `json:"vendor_id" binding:"required"`
	ProductID   string           `json:"product_id"`
	OrderID     string           `json:"order_id"`
	IssueType   string           `json:"issue_type" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Impact      string           `json:"impact"`
	Priority    string           `json:"priority" binding:"required,oneof=low medium high critical"`
	Items       []IssueItemInput `json:"items" binding:"omitempty,dive"`
}

type UpdateIssueRequest struct {
	IssueType   string `json:"issue_type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Impact      string `json:"impact"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=low medium high critical"`
}

type CloseIssueRequest struct {
	Note string `json:"note"`
}

type BulkStartRequest struct {
	IssueIDs []string `json:"issue_ids" binding:"required,min=1"`
}

type ApproveReplyRequest struct {
	// EditedBody optionally replaces the draft text before sending.
	EditedBody string `json:"edited_body"`
}

type RejectReplyRequest struct {
	Reason string `json:"reason"`
}

type SendMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}
