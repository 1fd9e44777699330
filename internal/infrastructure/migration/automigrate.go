package migration

import (
	"fmt"

	"gorm.io/gorm"

	"fitout/internal/infrastructure/persistence/models"
)

type GormAutoMigrateStrategy struct{}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, extra ...interface{}) error {
	targets := append(AllModels(), extra...)
	if err := db.AutoMigrate(targets...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AllModels lists every persisted model, used by auto-migration and the
// sqlite-backed repository tests.
func AllModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.ClientModel{},
		&models.ApartmentModel{},
		&models.VendorModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.DeliveryModel{},
		&models.PaymentModel{},
		&models.NotificationModel{},
		&models.IssueModel{},
		&models.IssueItemModel{},
		&models.MessageModel{},
	}
}
