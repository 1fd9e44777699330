package usecases

import (
	"context"
	"time"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	vo "fitout/internal/domain/issue/valueobjects"
	"fitout/internal/domain/order"
	"fitout/internal/domain/product"
	"fitout/internal/domain/shared/events"
	"fitout/internal/domain/vendor"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/id"
	"fitout/internal/shared/logger"
)

// ItemInput is one affected item reported on an issue.
type ItemInput struct {
	ProductName string
	Quantity    int
	IssueTags   []string
	Description string
	ImageRef    string
}

type CreateIssueCommand struct {
	ApartmentSID string
	VendorSID    string
	ProductSID   string
	OrderSID     string
	IssueType    string
	Description  string
	Impact       string
	Priority     string
	Items        []ItemInput
}

type CreateIssueResult struct {
	IssueID   uint
	SID       string
	Status    string
	Priority  string
	CreatedAt time.Time
}

type CreateIssueUseCase struct {
	issues     issue.IssueRepository
	apartments apartment.Repository
	vendors    vendor.Repository
	products   product.Repository
	orders     order.Repository
	dispatcher events.EventPublisher
	logger     logger.Interface
}

func NewCreateIssueUseCase(
	issues issue.IssueRepository,
	apartments apartment.Repository,
	vendors vendor.Repository,
	products product.Repository,
	orders order.Repository,
	dispatcher events.EventPublisher,
	log logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issues:     issues,
		apartments: apartments,
		vendors:    vendors,
		products:   products,
		orders:     orders,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error) {
	uc.logger.Infow("executing create issue use case",
		"apartment_sid", cmd.ApartmentSID, "vendor_sid", cmd.VendorSID, "issue_type", cmd.IssueType)

	apt, err := uc.apartments.GetBySID(ctx, cmd.ApartmentSID)
	if err != nil {
		return nil, err
	}
	vnd, err := uc.vendors.GetBySID(ctx, cmd.VendorSID)
	if err != nil {
		return nil, err
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	iss, err := issue.NewIssue(apt.ID(), vnd.ID(), cmd.IssueType, cmd.Description, cmd.Impact, priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.ProductSID != "" {
		p, err := uc.products.GetBySID(ctx, cmd.ProductSID)
		if err != nil {
			return nil, err
		}
		iss.SetProductID(p.ID())
	}
	if cmd.OrderSID != "" {
		o, err := uc.orders.GetBySID(ctx, cmd.OrderSID)
		if err != nil {
			return nil, err
		}
		iss.SetOrderID(o.ID())
	}

	sid, err := id.NewIssueID()
	if err != nil {
		return nil, err
	}
	if err := iss.SetSID(sid); err != nil {
		return nil, err
	}

	for _, input := range cmd.Items {
		item, err := issue.NewItem(0, input.ProductName, input.Quantity, input.IssueTags, input.Description, input.ImageRef)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if err := iss.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := uc.issues.Save(ctx, iss); err != nil {
		uc.logger.Errorw("failed to save issue", "error", err)
		return nil, err
	}

	publishEvent(uc.dispatcher, uc.logger, issue.NewIssueCreatedEvent(iss))
	uc.logger.Infow("issue created", "issue_id", iss.ID(), "sid", iss.SID())

	return &CreateIssueResult{
		IssueID:   iss.ID(),
		SID:       iss.SID(),
		Status:    iss.Status().String(),
		Priority:  iss.Priority().String(),
		CreatedAt: iss.CreatedAt(),
	}, nil
}
