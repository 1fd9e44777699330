package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fitout/internal/domain/issue"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

// allowedIssueOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedIssueOrderByFields = map[string]bool{
	"id":           true,
	"sid":          true,
	"status":       true,
	"priority":     true,
	"vendor_id":    true,
	"apartment_id": true,
	"created_at":   true,
	"updated_at":   true,
}

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     db,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *IssueRepository) Save(ctx context.Context, iss *issue.Issue) error {
	model := r.mapper.ToModel(iss)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save issue: %w", err)
	}

	if err := iss.SetID(model.ID); err != nil {
		return err
	}

	for _, item := range iss.Items() {
		if item.IssueID() == 0 {
			if err := item.SetIssueID(model.ID); err != nil {
				return err
			}
		}
		itemModel := r.mapper.ItemToModel(item)
		if err := tx.Create(itemModel).Error; err != nil {
			return fmt.Errorf("failed to save issue item: %w", err)
		}
		if err := item.SetID(itemModel.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *IssueRepository) Update(ctx context.Context, iss *issue.Issue) error {
	model := r.mapper.ToModel(iss)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, issueID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	// The issue owns its items and messages; remove them with it.
	if err := tx.Where("issue_id = ?", issueID).Delete(&models.IssueItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete issue items: %w", err)
	}
	if err := tx.Where("issue_id = ?", issueID).Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete issue messages: %w", err)
	}

	result := tx.Delete(&models.IssueModel{}, issueID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete issue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("issue not found")
	}
	return nil
}

func (r *IssueRepository) GetByID(ctx context.Context, issueID uint) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return r.toDomainWithItems(ctx, &model)
}

func (r *IssueRepository) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return r.toDomainWithItems(ctx, &model)
}

func (r *IssueRepository) GetByThreadToken(ctx context.Context, token string) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("thread_token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return r.toDomainWithItems(ctx, &model)
}

func (r *IssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.AIActivated != nil {
		query = query.Where("ai_activated = ?", *filter.AIActivated)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("description LIKE ? OR issue_type LIKE ? OR sid LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedIssueOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var issueModels []models.IssueModel
	if err := query.Find(&issueModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues := make([]*issue.Issue, len(issueModels))
	for i, model := range issueModels {
		iss, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		issues[i] = iss
	}

	return issues, total, nil
}

func (r *IssueRepository) toDomainWithItems(ctx context.Context, model *models.IssueModel) (*issue.Issue, error) {
	iss, err := r.mapper.ToDomain(model)
	if err != nil {
		return nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	var itemModels []models.IssueItemModel
	if err := tx.
		Where("issue_id = ?", model.ID).
		Order("id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load issue items: %w", err)
	}

	items := make([]*issue.Item, len(itemModels))
	for i, itemModel := range itemModels {
		item, err := r.mapper.ItemToDomain(&itemModel)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	iss.ReplaceItems(items)

	return iss, nil
}
