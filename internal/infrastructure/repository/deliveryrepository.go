package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fitout/internal/domain/delivery"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

var allowedDeliveryOrderByFields = map[string]bool{
	"id":             true,
	"order_id":       true,
	"status":         true,
	"scheduled_date": true,
	"created_at":     true,
	"updated_at":     true,
}

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Save(ctx context.Context, d *delivery.Delivery) error {
	model := mappers.DeliveryToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save delivery: %w", err)
	}
	return d.SetID(model.ID)
}

func (r *DeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	model := mappers.DeliveryToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.DeliveryModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update delivery: %w", result.Error)
	}
	return nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.DeliveryModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete delivery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("delivery not found")
	}
	return nil
}

func (r *DeliveryRepository) GetByID(ctx context.Context, id uint) (*delivery.Delivery, error) {
	var model models.DeliveryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("delivery not found")
		}
		return nil, fmt.Errorf("failed to find delivery: %w", err)
	}
	return mappers.DeliveryToDomain(&model)
}

func (r *DeliveryRepository) GetBySID(ctx context.Context, sid string) (*delivery.Delivery, error) {
	var model models.DeliveryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("delivery not found")
		}
		return nil, fmt.Errorf("failed to find delivery: %w", err)
	}
	return mappers.DeliveryToDomain(&model)
}

func (r *DeliveryRepository) List(ctx context.Context, filter delivery.Filter) ([]*delivery.Delivery, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.DeliveryModel{})

	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedDeliveryOrderByFields)
	query = applyPaging(query, filter.Page, filter.PageSize)

	var deliveryModels []models.DeliveryModel
	if err := query.Find(&deliveryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list deliveries: %w", err)
	}

	deliveries := make([]*delivery.Delivery, len(deliveryModels))
	for i, model := range deliveryModels {
		d, err := mappers.DeliveryToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		deliveries[i] = d
	}
	return deliveries, total, nil
}

func (r *DeliveryRepository) ListOverdue(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
	var deliveryModels []models.DeliveryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("scheduled_date < ? AND status IN ?", cutoff.UnixMilli(),
			[]string{delivery.StatusScheduled.String(), delivery.StatusInTransit.String()}).
		Order("scheduled_date ASC").
		Find(&deliveryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue deliveries: %w", err)
	}

	deliveries := make([]*delivery.Delivery, len(deliveryModels))
	for i, model := range deliveryModels {
		d, err := mappers.DeliveryToDomain(&model)
		if err != nil {
			return nil, err
		}
		deliveries[i] = d
	}
	return deliveries, nil
}
