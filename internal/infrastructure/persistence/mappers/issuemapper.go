package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/infrastructure/persistence/models"
)

// IssueMapper handles the conversion between issue domain entities and
// persistence models.
type IssueMapper interface {
	// ToModel converts an issue domain entity to a persistence model.
	ToModel(iss *issue.Issue) *models.IssueModel

	// ToDomain converts an issue persistence model to a domain entity.
	ToDomain(model *models.IssueModel) (*issue.Issue, error)

	// ItemToModel converts an issue item domain entity to a persistence model.
	ItemToModel(item *issue.Item) *models.IssueItemModel

	// ItemToDomain converts an issue item persistence model to a domain entity.
	ItemToDomain(model *models.IssueItemModel) (*issue.Item, error)

	// MessageToModel converts a message domain entity to a persistence model.
	MessageToModel(msg *issue.Message) *models.MessageModel

	// MessageToDomain converts a message persistence model to a domain entity.
	MessageToDomain(model *models.MessageModel) (*issue.Message, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(iss *issue.Issue) *models.IssueModel {
	return &models.IssueModel{
		ID:                iss.ID(),
		SID:               iss.SID(),
		ApartmentID:       iss.ApartmentID(),
		VendorID:          iss.VendorID(),
		ProductID:         iss.ProductID(),
		OrderID:           iss.OrderID(),
		IssueType:         iss.IssueType(),
		Description:       iss.Description(),
		Impact:            iss.Impact(),
		Priority:          iss.Priority().String(),
		Status:            iss.Status().String(),
		AIActivated:       iss.AIActivated(),
		ThreadToken:       emptyToNil(iss.ThreadToken()),
		FirstSentAt:       timePtrToMillis(iss.FirstSentAt()),
		LastVendorReplyAt: timePtrToMillis(iss.LastVendorReplyAt()),
		AISummary:         iss.AISummary(),
		NextAction:        iss.NextAction(),
		CreatedAt:         iss.CreatedAt().UnixMilli(),
		UpdatedAt:         iss.UpdatedAt().UnixMilli(),
		ClosedAt:          timePtrToMillis(iss.ClosedAt()),
	}
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", model.ID, err)
	}
	status, err := vo.NewIssueStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", model.ID, err)
	}

	return issue.ReconstructIssue(
		model.ID,
		model.SID,
		model.ApartmentID,
		model.VendorID,
		model.ProductID,
		model.OrderID,
		model.IssueType,
		model.Description,
		model.Impact,
		priority,
		status,
		model.AIActivated,
		nilToEmpty(model.ThreadToken),
		millisPtrToTime(model.FirstSentAt),
		millisPtrToTime(model.LastVendorReplyAt),
		model.AISummary,
		model.NextAction,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisPtrToTime(model.ClosedAt),
	)
}

func (m *IssueMapperImpl) ItemToModel(item *issue.Item) *models.IssueItemModel {
	model := &models.IssueItemModel{
		ID:          item.ID(),
		IssueID:     item.IssueID(),
		ProductName: item.ProductName(),
		Quantity:    item.Quantity(),
		Description: item.Description(),
		ImageRef:    item.ImageRef(),
		CreatedAt:   item.CreatedAt().UnixMilli(),
		UpdatedAt:   item.UpdatedAt().UnixMilli(),
	}

	if len(item.IssueTags()) > 0 {
		tagsJSON, _ := json.Marshal(item.IssueTags())
		model.IssueTags = datatypes.JSON(tagsJSON)
	}

	return model
}

func (m *IssueMapperImpl) ItemToDomain(model *models.IssueItemModel) (*issue.Item, error) {
	var tags []string
	if len(model.IssueTags) > 0 {
		if err := json.Unmarshal(model.IssueTags, &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal issue item tags (id=%d): %w", model.ID, err)
		}
	}

	return issue.ReconstructItem(
		model.ID,
		model.IssueID,
		model.ProductName,
		model.Quantity,
		tags,
		model.Description,
		model.ImageRef,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *IssueMapperImpl) MessageToModel(msg *issue.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:           msg.ID(),
		IssueID:      msg.IssueID(),
		Sender:       msg.Sender().String(),
		Status:       msg.Status().String(),
		Subject:      msg.Subject(),
		Body:         msg.Body(),
		HTMLBody:     msg.HTMLBody(),
		FromAddress:  msg.FromAddress(),
		ToAddress:    msg.ToAddress(),
		RFCMessageID: msg.RFCMessageID(),
		InReplyTo:    msg.InReplyTo(),
		ThreadID:     msg.ThreadID(),
		AIConfidence: msg.AIConfidence(),
		ApproverID:   msg.ApproverID(),
		ApprovedAt:   timePtrToMillis(msg.ApprovedAt()),
		CreatedAt:    msg.CreatedAt().UnixMilli(),
		UpdatedAt:    msg.UpdatedAt().UnixMilli(),
	}
}

func (m *IssueMapperImpl) MessageToDomain(model *models.MessageModel) (*issue.Message, error) {
	sender, err := vo.NewSender(model.Sender)
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", model.ID, err)
	}
	status, err := vo.NewMessageStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", model.ID, err)
	}

	return issue.ReconstructMessage(
		model.ID,
		model.IssueID,
		sender,
		status,
		model.Subject,
		model.Body,
		model.HTMLBody,
		model.FromAddress,
		model.ToAddress,
		model.RFCMessageID,
		model.InReplyTo,
		model.ThreadID,
		model.AIConfidence,
		model.ApproverID,
		millisPtrToTime(model.ApprovedAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
