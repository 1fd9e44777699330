package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitout/internal/domain/apartment"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

var allowedApartmentOrderByFields = map[string]bool{
	"id":         true,
	"client_id":  true,
	"address":    true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

func (r *ApartmentRepository) Save(ctx context.Context, a *apartment.Apartment) error {
	model := mappers.ApartmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save apartment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *ApartmentRepository) Update(ctx context.Context, a *apartment.Apartment) error {
	model := mappers.ApartmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ApartmentModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update apartment: %w", result.Error)
	}
	return nil
}

func (r *ApartmentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ApartmentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete apartment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("apartment not found")
	}
	return nil
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id uint) (*apartment.Apartment, error) {
	var model models.ApartmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("apartment not found")
		}
		return nil, fmt.Errorf("failed to find apartment: %w", err)
	}
	return mappers.ApartmentToDomain(&model)
}

func (r *ApartmentRepository) GetBySID(ctx context.Context, sid string) (*apartment.Apartment, error) {
	var model models.ApartmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("apartment not found")
		}
		return nil, fmt.Errorf("failed to find apartment: %w", err)
	}
	return mappers.ApartmentToDomain(&model)
}

func (r *ApartmentRepository) List(ctx context.Context, filter apartment.Filter) ([]*apartment.Apartment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ApartmentModel{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Search != "" {
		query = query.Where("address LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count apartments: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedApartmentOrderByFields)
	query = applyPaging(query, filter.Page, filter.PageSize)

	var apartmentModels []models.ApartmentModel
	if err := query.Find(&apartmentModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list apartments: %w", err)
	}

	apartments := make([]*apartment.Apartment, len(apartmentModels))
	for i, model := range apartmentModels {
		a, err := mappers.ApartmentToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		apartments[i] = a
	}
	return apartments, total, nil
}
