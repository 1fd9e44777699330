package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fitout/internal/domain/client"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

var allowedClientOrderByFields = map[string]bool{
	"id":         true,
	"name":       true,
	"email":      true,
	"created_at": true,
	"updated_at": true,
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Save(ctx context.Context, c *client.Client) error {
	model := mappers.ClientToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("client already exists")
		}
		return fmt.Errorf("failed to save client: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	model := mappers.ClientToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("client not found")
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("client not found")
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return mappers.ClientToDomain(&model)
}

func (r *ClientRepository) GetBySID(ctx context.Context, sid string) (*client.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("client not found")
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return mappers.ClientToDomain(&model)
}

func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ClientModel{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedClientOrderByFields)
	query = applyPaging(query, filter.Page, filter.PageSize)

	var clientModels []models.ClientModel
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, len(clientModels))
	for i, model := range clientModels {
		c, err := mappers.ClientToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		clients[i] = c
	}
	return clients, total, nil
}

// applyOrder applies whitelist-validated sorting shared by the CRUD
// repositories.
func applyOrder(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	field := strings.ToLower(sortBy)
	if field != "" && allowed[field] {
		order := strings.ToUpper(sortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		return query.Order(field + " " + order)
	}
	return query.Order("created_at DESC")
}

func applyPaging(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		return query.Limit(pageSize).Offset(offset)
	}
	return query
}
