package issue

import (
	"fmt"
	"time"

	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/shared/biztime"
)

// Issue is the aggregate root of the vendor-communication workflow. It
// references an apartment and a vendor, optionally a product and an order,
// and owns its items and conversation messages.
type Issue struct {
	id                uint
	sid               string
	apartmentID       uint
	vendorID          uint
	productID         *uint
	orderID           *uint
	issueType         string
	description       string
	impact            string
	priority          vo.Priority
	status            vo.IssueStatus
	aiActivated       bool
	threadToken       string
	firstSentAt       *time.Time
	lastVendorReplyAt *time.Time
	aiSummary         string
	nextAction        string
	items             []*Item
	createdAt         time.Time
	updatedAt         time.Time
	closedAt          *time.Time
}

func NewIssue(
	apartmentID uint,
	vendorID uint,
	issueType string,
	description string,
	impact string,
	priority vo.Priority,
) (*Issue, error) {
	if apartmentID == 0 {
		return nil, fmt.Errorf("apartment ID is required")
	}
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if len(issueType) == 0 {
		return nil, fmt.Errorf("issue type is required")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 10000 {
		return nil, fmt.Errorf("description exceeds maximum length of 10000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}

	now := biztime.NowUTC()
	return &Issue{
		apartmentID: apartmentID,
		vendorID:    vendorID,
		issueType:   issueType,
		description: description,
		impact:      impact,
		priority:    priority,
		status:      vo.StatusOpen,
		items:       []*Item{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructIssue(
	id uint,
	sid string,
	apartmentID uint,
	vendorID uint,
	productID *uint,
	orderID *uint,
	issueType string,
	description string,
	impact string,
	priority vo.Priority,
	status vo.IssueStatus,
	aiActivated bool,
	threadToken string,
	firstSentAt *time.Time,
	lastVendorReplyAt *time.Time,
	aiSummary string,
	nextAction string,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if len(sid) == 0 {
		return nil, fmt.Errorf("issue SID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Issue{
		id:                id,
		sid:               sid,
		apartmentID:       apartmentID,
		vendorID:          vendorID,
		productID:         productID,
		orderID:           orderID,
		issueType:         issueType,
		description:       description,
		impact:            impact,
		priority:          priority,
		status:            status,
		aiActivated:       aiActivated,
		threadToken:       threadToken,
		firstSentAt:       firstSentAt,
		lastVendorReplyAt: lastVendorReplyAt,
		aiSummary:         aiSummary,
		nextAction:        nextAction,
		items:             []*Item{},
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		closedAt:          closedAt,
	}, nil
}

func (i *Issue) ID() uint                      { return i.id }
func (i *Issue) SID() string                   { return i.sid }
func (i *Issue) ApartmentID() uint             { return i.apartmentID }
func (i *Issue) VendorID() uint                { return i.vendorID }
func (i *Issue) ProductID() *uint              { return i.productID }
func (i *Issue) OrderID() *uint                { return i.orderID }
func (i *Issue) IssueType() string             { return i.issueType }
func (i *Issue) Description() string           { return i.description }
func (i *Issue) Impact() string                { return i.impact }
func (i *Issue) Priority() vo.Priority         { return i.priority }
func (i *Issue) Status() vo.IssueStatus        { return i.status }
func (i *Issue) AIActivated() bool             { return i.aiActivated }
func (i *Issue) ThreadToken() string           { return i.threadToken }
func (i *Issue) FirstSentAt() *time.Time       { return i.firstSentAt }
func (i *Issue) LastVendorReplyAt() *time.Time { return i.lastVendorReplyAt }
func (i *Issue) AISummary() string             { return i.aiSummary }
func (i *Issue) NextAction() string            { return i.nextAction }
func (i *Issue) CreatedAt() time.Time          { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time          { return i.updatedAt }
func (i *Issue) ClosedAt() *time.Time          { return i.closedAt }

func (i *Issue) Items() []*Item {
	itemsCopy := make([]*Item, len(i.items))
	copy(itemsCopy, i.items)
	return itemsCopy
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Issue) SetSID(sid string) error {
	if len(i.sid) > 0 {
		return fmt.Errorf("issue SID is already set")
	}
	if len(sid) == 0 {
		return fmt.Errorf("issue SID cannot be empty")
	}
	i.sid = sid
	return nil
}

func (i *Issue) SetThreadToken(token string) error {
	if len(i.threadToken) > 0 {
		return fmt.Errorf("thread token is already set")
	}
	if len(token) == 0 {
		return fmt.Errorf("thread token cannot be empty")
	}
	i.threadToken = token
	return nil
}

func (i *Issue) SetProductID(productID uint) {
	if productID == 0 {
		i.productID = nil
		return
	}
	i.productID = &productID
}

func (i *Issue) SetOrderID(orderID uint) {
	if orderID == 0 {
		i.orderID = nil
		return
	}
	i.orderID = &orderID
}

func (i *Issue) UpdateDetails(issueType, description, impact string) error {
	if i.status.IsClosed() {
		return fmt.Errorf("cannot update a closed issue")
	}
	if len(issueType) == 0 {
		return fmt.Errorf("issue type is required")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}

	i.issueType = issueType
	i.description = description
	i.impact = impact
	i.updatedAt = biztime.NowUTC()
	return nil
}

// ActivateAI marks the issue as AI-managed. The caller validates the vendor
// email before activation.
func (i *Issue) ActivateAI() error {
	if i.status.IsClosed() {
		return fmt.Errorf("cannot activate AI on a closed issue")
	}
	if i.aiActivated {
		return fmt.Errorf("AI is already activated for this issue")
	}
	i.aiActivated = true
	i.updatedAt = biztime.NowUTC()
	return nil
}

// MarkFirstSent stamps the initial outbound report and moves the issue to
// pending_vendor. Subsequent sends leave firstSentAt untouched.
func (i *Issue) MarkFirstSent(at time.Time) error {
	if i.firstSentAt != nil {
		return nil
	}
	if !i.status.CanTransitionTo(vo.StatusPendingVendor) {
		return fmt.Errorf("cannot move issue from %s to %s", i.status, vo.StatusPendingVendor)
	}
	i.firstSentAt = &at
	i.status = vo.StatusPendingVendor
	i.updatedAt = biztime.NowUTC()
	return nil
}

// RecordVendorReply stamps the latest inbound vendor message time.
func (i *Issue) RecordVendorReply(at time.Time) {
	i.lastVendorReplyAt = &at
	i.updatedAt = biztime.NowUTC()
}

func (i *Issue) ChangeStatus(newStatus vo.IssueStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if i.status == newStatus {
		return nil
	}
	if !i.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", i.status, newStatus)
	}

	i.status = newStatus
	now := biztime.NowUTC()
	i.updatedAt = now
	if newStatus.IsClosed() && i.closedAt == nil {
		i.closedAt = &now
	}
	return nil
}

// AgreeResolution moves the issue to resolution_agreed when the vendor
// accepts responsibility or proposes a concrete fix.
func (i *Issue) AgreeResolution() error {
	return i.ChangeStatus(vo.StatusResolutionAgreed)
}

// Escalate raises priority to critical. Escalation never changes the status.
func (i *Issue) Escalate() error {
	if i.status.IsClosed() {
		return fmt.Errorf("cannot escalate a closed issue")
	}
	if i.priority.IsCritical() {
		return nil
	}
	i.priority = vo.PriorityCritical
	i.updatedAt = biztime.NowUTC()
	return nil
}

func (i *Issue) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}
	if i.status.IsClosed() {
		return fmt.Errorf("cannot change priority of a closed issue")
	}
	if i.priority == newPriority {
		return nil
	}
	i.priority = newPriority
	i.updatedAt = biztime.NowUTC()
	return nil
}

func (i *Issue) Close() error {
	if i.status.IsClosed() {
		return nil
	}
	return i.ChangeStatus(vo.StatusClosed)
}

// UpdateAISummary replaces the rolling conversation summary and suggested
// next action maintained by the analysis step.
func (i *Issue) UpdateAISummary(summary, nextAction string) {
	if summary != "" {
		i.aiSummary = summary
	}
	if nextAction != "" {
		i.nextAction = nextAction
	}
	i.updatedAt = biztime.NowUTC()
}

func (i *Issue) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	i.items = append(i.items, item)
	i.updatedAt = biztime.NowUTC()
	return nil
}

func (i *Issue) ReplaceItems(items []*Item) {
	if items == nil {
		items = []*Item{}
	}
	i.items = items
}
