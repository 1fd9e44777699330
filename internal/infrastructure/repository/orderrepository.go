package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitout/internal/domain/order"
	"fitout/internal/infrastructure/persistence/mappers"
	"fitout/internal/infrastructure/persistence/models"
	db "fitout/internal/shared/db"
	apperrors "fitout/internal/shared/errors"
)

var allowedOrderOrderByFields = map[string]bool{
	"id":           true,
	"number":       true,
	"apartment_id": true,
	"vendor_id":    true,
	"status":       true,
	"total_amount": true,
	"created_at":   true,
	"updated_at":   true,
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("order number already exists")
		}
		return fmt.Errorf("failed to save order: %w", err)
	}
	if err := o.SetID(model.ID); err != nil {
		return err
	}

	for _, item := range o.Items() {
		if item.OrderID() == 0 {
			if err := item.SetOrderID(model.ID); err != nil {
				return err
			}
		}
		itemModel := mappers.OrderItemToModel(item)
		if err := tx.Create(itemModel).Error; err != nil {
			return fmt.Errorf("failed to save order item: %w", err)
		}
		if err := item.SetID(itemModel.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	// Replace line items wholesale; drafts are the only orders whose items
	// change, and they stay small.
	if err := tx.Where("order_id = ?", model.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}
	for _, item := range o.Items() {
		itemModel := mappers.OrderItemToModel(item)
		itemModel.ID = 0
		itemModel.OrderID = model.ID
		if err := tx.Create(itemModel).Error; err != nil {
			return fmt.Errorf("failed to save order item: %w", err)
		}
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	result := tx.Delete(&models.OrderModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("order not found")
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return r.toDomainWithItems(ctx, &model)
}

func (r *OrderRepository) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	var model models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return r.toDomainWithItems(ctx, &model)
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var model models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return r.toDomainWithItems(ctx, &model)
}

func (r *OrderRepository) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.OrderModel{})

	if filter.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR sid LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedOrderOrderByFields)
	query = applyPaging(query, filter.Page, filter.PageSize)

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(orderModels))
	for i, model := range orderModels {
		o, err := mappers.OrderToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		orders[i] = o
	}
	return orders, total, nil
}

func (r *OrderRepository) toDomainWithItems(ctx context.Context, model *models.OrderModel) (*order.Order, error) {
	o, err := mappers.OrderToDomain(model)
	if err != nil {
		return nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	var itemModels []models.OrderItemModel
	if err := tx.
		Where("order_id = ?", model.ID).
		Order("id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	items := make([]*order.Item, len(itemModels))
	for i, itemModel := range itemModels {
		item, err := mappers.OrderItemToDomain(&itemModel)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	o.LoadItems(items)

	return o, nil
}
