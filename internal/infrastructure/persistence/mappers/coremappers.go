package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/client"
	"fitout/internal/domain/delivery"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/order"
	"fitout/internal/domain/payment"
	"fitout/internal/domain/product"
	"fitout/internal/domain/user"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/persistence/models"
	"fitout/internal/shared/authorization"
)

// The core CRUD domains use plain mapping functions; only the issue domain
// carries a mapper interface because its repositories are mocked in tests.

func ClientToModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:        c.ID(),
		SID:       c.SID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Notes:     c.Notes(),
		CreatedAt: c.CreatedAt().UnixMilli(),
		UpdatedAt: c.UpdatedAt().UnixMilli(),
	}
}

func ClientToDomain(m *models.ClientModel) (*client.Client, error) {
	return client.ReconstructClient(
		m.ID, m.SID, m.Name, m.Email, m.Phone, m.Notes,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func ApartmentToModel(a *apartment.Apartment) *models.ApartmentModel {
	return &models.ApartmentModel{
		ID:        a.ID(),
		SID:       a.SID(),
		ClientID:  a.ClientID(),
		Address:   a.Address(),
		Floor:     a.Floor(),
		Unit:      a.Unit(),
		AreaSqm:   a.AreaSqm(),
		Status:    a.Status().String(),
		Notes:     a.Notes(),
		CreatedAt: a.CreatedAt().UnixMilli(),
		UpdatedAt: a.UpdatedAt().UnixMilli(),
	}
}

func ApartmentToDomain(m *models.ApartmentModel) (*apartment.Apartment, error) {
	status, err := apartment.NewFurnishingStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("apartment %d: %w", m.ID, err)
	}
	return apartment.ReconstructApartment(
		m.ID, m.SID, m.ClientID, m.Address, m.Floor, m.Unit, m.AreaSqm,
		status, m.Notes,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func VendorToModel(v *vendor.Vendor) *models.VendorModel {
	model := &models.VendorModel{
		ID:          v.ID(),
		SID:         v.SID(),
		CompanyName: v.CompanyName(),
		ContactName: v.ContactName(),
		Email:       v.Email(),
		Phone:       v.Phone(),
		Rating:      v.Rating(),
		Active:      v.IsActive(),
		CreatedAt:   v.CreatedAt().UnixMilli(),
		UpdatedAt:   v.UpdatedAt().UnixMilli(),
	}
	if len(v.Categories()) > 0 {
		categoriesJSON, _ := json.Marshal(v.Categories())
		model.Categories = datatypes.JSON(categoriesJSON)
	}
	return model
}

func VendorToDomain(m *models.VendorModel) (*vendor.Vendor, error) {
	var categories []string
	if len(m.Categories) > 0 {
		if err := json.Unmarshal(m.Categories, &categories); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vendor categories (id=%d): %w", m.ID, err)
		}
	}
	return vendor.ReconstructVendor(
		m.ID, m.SID, m.CompanyName, m.ContactName, m.Email, m.Phone,
		categories, m.Rating, m.Active,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func ProductToModel(p *product.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:           p.ID(),
		SID:          p.SID(),
		VendorID:     p.VendorID(),
		Name:         p.Name(),
		SKU:          p.SKU(),
		Category:     p.Category(),
		UnitPrice:    p.UnitPrice(),
		Currency:     p.Currency(),
		LeadTimeDays: p.LeadTimeDays(),
		Active:       p.IsActive(),
		CreatedAt:    p.CreatedAt().UnixMilli(),
		UpdatedAt:    p.UpdatedAt().UnixMilli(),
	}
}

func ProductToDomain(m *models.ProductModel) (*product.Product, error) {
	return product.ReconstructProduct(
		m.ID, m.SID, m.VendorID, m.Name, m.SKU, m.Category,
		m.UnitPrice, m.Currency, m.LeadTimeDays, m.Active,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func OrderToModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:          o.ID(),
		SID:         o.SID(),
		Number:      o.Number(),
		ApartmentID: o.ApartmentID(),
		VendorID:    o.VendorID(),
		Status:      o.Status().String(),
		Currency:    o.Currency(),
		TotalAmount: o.TotalAmount(),
		Notes:       o.Notes(),
		CreatedAt:   o.CreatedAt().UnixMilli(),
		UpdatedAt:   o.UpdatedAt().UnixMilli(),
	}
}

func OrderToDomain(m *models.OrderModel) (*order.Order, error) {
	status, err := order.NewOrderStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", m.ID, err)
	}
	return order.ReconstructOrder(
		m.ID, m.SID, m.Number, m.ApartmentID, m.VendorID,
		status, m.Currency, m.TotalAmount, m.Notes,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func OrderItemToModel(i *order.Item) *models.OrderItemModel {
	return &models.OrderItemModel{
		ID:          i.ID(),
		OrderID:     i.OrderID(),
		ProductID:   i.ProductID(),
		ProductName: i.ProductName(),
		Quantity:    i.Quantity(),
		UnitPrice:   i.UnitPrice(),
		CreatedAt:   i.CreatedAt().UnixMilli(),
	}
}

func OrderItemToDomain(m *models.OrderItemModel) (*order.Item, error) {
	return order.ReconstructItem(
		m.ID, m.OrderID, m.ProductID, m.ProductName, m.Quantity, m.UnitPrice,
		millisToTime(m.CreatedAt),
	)
}

func DeliveryToModel(d *delivery.Delivery) *models.DeliveryModel {
	return &models.DeliveryModel{
		ID:            d.ID(),
		SID:           d.SID(),
		OrderID:       d.OrderID(),
		Status:        d.Status().String(),
		ScheduledDate: d.ScheduledDate().UnixMilli(),
		DeliveredDate: timePtrToMillis(d.DeliveredDate()),
		Carrier:       d.Carrier(),
		TrackingCode:  d.TrackingCode(),
		Notes:         d.Notes(),
		CreatedAt:     d.CreatedAt().UnixMilli(),
		UpdatedAt:     d.UpdatedAt().UnixMilli(),
	}
}

func DeliveryToDomain(m *models.DeliveryModel) (*delivery.Delivery, error) {
	status, err := delivery.NewDeliveryStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("delivery %d: %w", m.ID, err)
	}
	return delivery.ReconstructDelivery(
		m.ID, m.SID, m.OrderID, status,
		millisToTime(m.ScheduledDate), millisPtrToTime(m.DeliveredDate),
		m.Carrier, m.TrackingCode, m.Notes,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:          p.ID(),
		SID:         p.SID(),
		OrderID:     p.OrderID(),
		Amount:      p.Amount(),
		Currency:    p.Currency(),
		Method:      p.Method().String(),
		Status:      p.Status().String(),
		PaidAt:      timePtrToMillis(p.PaidAt()),
		ExternalRef: p.ExternalRef(),
		CreatedAt:   p.CreatedAt().UnixMilli(),
		UpdatedAt:   p.UpdatedAt().UnixMilli(),
	}
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	method, err := payment.NewPaymentMethod(m.Method)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}
	status, err := payment.NewPaymentStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", m.ID, err)
	}
	return payment.ReconstructPayment(
		m.ID, m.SID, m.OrderID, m.Amount, m.Currency, method, status,
		millisPtrToTime(m.PaidAt), m.ExternalRef,
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:             n.ID(),
		UserID:         n.UserID(),
		Type:           n.Type().String(),
		Title:          n.Title(),
		Content:        n.Content(),
		ContentHTML:    n.ContentHTML(),
		RelatedIssueID: n.RelatedIssueID(),
		ReadFlag:       n.IsRead(),
		ReadAt:         timePtrToMillis(n.ReadAt()),
		CreatedAt:      n.CreatedAt().UnixMilli(),
		UpdatedAt:      n.UpdatedAt().UnixMilli(),
	}
}

func NotificationToDomain(m *models.NotificationModel) (*notification.Notification, error) {
	notificationType, err := notification.NewNotificationType(m.Type)
	if err != nil {
		return nil, fmt.Errorf("notification %d: %w", m.ID, err)
	}
	return notification.ReconstructNotification(
		m.ID, m.UserID, notificationType, m.Title, m.Content, m.ContentHTML,
		m.RelatedIssueID, m.ReadFlag, millisPtrToTime(m.ReadAt),
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		LastLoginAt:  timePtrToMillis(u.LastLoginAt()),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func UserToDomain(m *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		m.ID, m.Email, m.Name, m.PasswordHash,
		authorization.ParseUserRole(m.Role), m.Active,
		millisPtrToTime(m.LastLoginAt),
		millisToTime(m.CreatedAt), millisToTime(m.UpdatedAt),
	)
}
