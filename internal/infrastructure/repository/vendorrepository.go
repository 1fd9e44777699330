package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

var allowedVendorOrderByFields = map[string]bool{
	"id":           true,
	"company_name": true,
	"email":        true,
	"rating":       true,
	"created_at":   true,
	"updated_at":   true,
}

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Save(ctx context.Context, v *vendor.Vendor) error {
	model := mappers.VendorToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return v.SetID(model.ID)
}

func (r *VendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	model := mappers.VendorToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.VendorModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update vendor: %w", result.Error)
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.VendorModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("vendor not found")
	}
	return nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id uint) (*vendor.Vendor, error) {
	var model models.VendorModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vendor not found")
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return mappers.VendorToDomain(&model)
}

func (r *VendorRepository) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	var model models.VendorModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vendor not found")
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return mappers.VendorToDomain(&model)
}

func (r *VendorRepository) List(ctx context.Context, filter vendor.Filter) ([]*vendor.Vendor, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.VendorModel{})

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Category != "" {
		// Categories are stored as a JSON array of strings.
		query = query.Where("categories LIKE ?", "%\""+filter.Category+"\"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("company_name LIKE ? OR contact_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedVendorOrderByFields)
	query = applyPaging(query, filter.Page, filter.PageSize)

	var vendorModels []models.VendorModel
	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}

	vendors := make([]*vendor.Vendor, len(vendorModels))
	for i, model := range vendorModels {
		v, err := mappers.VendorToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		vendors[i] = v
	}
	return vendors, total, nil
}
