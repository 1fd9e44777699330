package models

import "gorm.io/datatypes"

type ClientModel struct {
	ID        uint   `gorm:"primaryKey"`
	SID       string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	Name      string `gorm:"size:200;not null;index"`
	Email     string `gorm:"size:320"`
	Phone     string `gorm:"size:50"`
	Notes     string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ClientModel) TableName() string {
	return "clients"
}

type ApartmentModel struct {
	ID        uint    `gorm:"primaryKey"`
	SID       string  `gorm:"column:sid;uniqueIndex;size:32;not null"`
	ClientID  uint    `gorm:"not null;index"`
	Address   string  `gorm:"size:500;not null"`
	Floor     string  `gorm:"size:50"`
	Unit      string  `gorm:"size:50"`
	AreaSqm   float64 `gorm:"not null;default:0"`
	Status    string  `gorm:"size:30;not null;index"`
	Notes     string  `gorm:"type:text"`
	CreatedAt int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (ApartmentModel) TableName() string {
	return "apartments"
}

type VendorModel struct {
	ID          uint           `gorm:"primaryKey"`
	SID         string         `gorm:"column:sid;uniqueIndex;size:32;not null"`
	CompanyName string         `gorm:"size:200;not null;index"`
	ContactName string         `gorm:"size:200"`
	Email       string         `gorm:"size:320;index"`
	Phone       string         `gorm:"size:50"`
	Categories  datatypes.JSON `gorm:"type:json"`
	Rating      float64        `gorm:"not null;default:0"`
	Active      bool           `gorm:"not null;default:true;index"`
	CreatedAt   int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (VendorModel) TableName() string {
	return "vendors"
}

type ProductModel struct {
	ID           uint   `gorm:"primaryKey"`
	SID          string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	VendorID     uint   `gorm:"not null;index"`
	Name         string `gorm:"size:200;not null;index"`
	SKU          string `gorm:"size:100;index"`
	Category     string `gorm:"size:100;index"`
	UnitPrice    int64  `gorm:"not null;default:0"`
	Currency     string `gorm:"size:3;not null"`
	LeadTimeDays int    `gorm:"not null;default:0"`
	Active       bool   `gorm:"not null;default:true;index"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

type OrderModel struct {
	ID          uint   `gorm:"primaryKey"`
	SID         string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	Number      string `gorm:"uniqueIndex;size:50;not null"`
	ApartmentID uint   `gorm:"not null;index"`
	VendorID    uint   `gorm:"not null;index"`
	Status      string `gorm:"size:30;not null;index"`
	Currency    string `gorm:"size:3;not null"`
	TotalAmount int64  `gorm:"not null;default:0"`
	Notes       string `gorm:"type:text"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     uint   `gorm:"not null;index"`
	ProductID   uint   `gorm:"not null;index"`
	ProductName string `gorm:"size:200;not null"`
	Quantity    int    `gorm:"not null;default:1"`
	UnitPrice   int64  `gorm:"not null;default:0"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

type DeliveryModel struct {
	ID            uint   `gorm:"primaryKey"`
	SID           string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	OrderID       uint   `gorm:"not null;index"`
	Status        string `gorm:"size:30;not null;index"`
	ScheduledDate int64  `gorm:"not null;index"`
	DeliveredDate *int64
	Carrier       string `gorm:"size:200"`
	TrackingCode  string `gorm:"size:200"`
	Notes         string `gorm:"type:text"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (DeliveryModel) TableName() string {
	return "deliveries"
}

type PaymentModel struct {
	ID          uint   `gorm:"primaryKey"`
	SID         string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	OrderID     uint   `gorm:"not null;index"`
	Amount      int64  `gorm:"not null"`
	Currency    string `gorm:"size:3;not null"`
	Method      string `gorm:"size:30;not null"`
	Status      string `gorm:"size:30;not null;index"`
	PaidAt      *int64
	ExternalRef string `gorm:"size:200"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

type NotificationModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Type           string `gorm:"size:50;not null;index"`
	Title          string `gorm:"size:200;not null"`
	Content        string `gorm:"type:text;not null"`
	ContentHTML    string `gorm:"type:text"`
	RelatedIssueID *uint  `gorm:"index"`
	ReadFlag       bool   `gorm:"not null;default:false;index"`
	ReadAt         *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	Name         string `gorm:"size:200;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:30;not null"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *int64
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
