package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, msg *issue.Message) error {
	model := r.mapper.MessageToModel(msg)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	if err := msg.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *MessageRepository) Update(ctx context.Context, msg *issue.Message) error {
	model := r.mapper.MessageToModel(msg)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.MessageModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update message: %w", result.Error)
	}

	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uint) (*issue.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("message not found")
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) GetByRFCMessageID(ctx context.Context, rfcMessageID string) (*issue.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("rfc_message_id = ?", rfcMessageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("message not found")
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) ListByIssueID(ctx context.Context, issueID uint) ([]*issue.Message, error) {
	var messageModels []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at ASC, id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*issue.Message, len(messageModels))
	for i, model := range messageModels {
		msg, err := r.mapper.MessageToDomain(&model)
		if err != nil {
			return nil, err
		}
		messages[i] = msg
	}

	return messages, nil
}

func (r *MessageRepository) FindRecentSent(ctx context.Context, issueID uint, toAddress, subject, body string, since time.Time) (*issue.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("issue_id = ? AND to_address = ? AND subject = ? AND body = ? AND status = ? AND created_at >= ?",
			issueID, toAddress, subject, body, vo.MessageStatusSent.String(), since.UnixMilli()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query recent sent messages: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) CountPendingApproval(ctx context.Context, olderThan time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.MessageModel{}).
		Where("status = ? AND created_at < ?", vo.MessageStatusPendingApproval.String(), olderThan.UnixMilli()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending drafts: %w", err)
	}
	return count, nil
}

func (r *MessageRepository) ListPendingApproval(ctx context.Context, olderThan time.Time) ([]*issue.Message, error) {
	var messageModels []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status = ? AND created_at < ?", vo.MessageStatusPendingApproval.String(), olderThan.UnixMilli()).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending drafts: %w", err)
	}

	messages := make([]*issue.Message, len(messageModels))
	for i, model := range messageModels {
		msg, err := r.mapper.MessageToDomain(&model)
		if err != nil {
			return nil, err
		}
		messages[i] = msg
	}

	return messages, nil
}
