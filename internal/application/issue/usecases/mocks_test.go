package usecases

import (
	"context"
	"time"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/notification"
	"fitout/internal/domain/order"
	"fitout/internal/domain/product"
	"fitout/internal/domain/shared/events"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
	"fitout/internal/infrastructure/email"
	apperrors "fitout/internal/shared/errors"
)

type mockIssueRepo struct {
	saveFunc             func(ctx context.Context, iss *issue.Issue) error
	updateFunc           func(ctx context.Context, iss *issue.Issue) error
	getBySIDFunc         func(ctx context.Context, sid string) (*issue.Issue, error)
	getByIDFunc          func(ctx context.Context, issueID uint) (*issue.Issue, error)
	getByThreadTokenFunc func(ctx context.Context, token string) (*issue.Issue, error)
	listFunc             func(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error)

	saved   []*issue.Issue
	updated []*issue.Issue
}

func (m *mockIssueRepo) Save(ctx context.Context, iss *issue.Issue) error {
	m.saved = append(m.saved, iss)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, iss)
	}
	if iss.ID() == 0 {
		_ = iss.SetID(uint(len(m.saved)))
	}
	return nil
}

func (m *mockIssueRepo) Update(ctx context.Context, iss *issue.Issue) error {
	m.updated = append(m.updated, iss)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, iss)
	}
	return nil
}

func (m *mockIssueRepo) Delete(ctx context.Context, issueID uint) error { return nil }

func (m *mockIssueRepo) GetByID(ctx context.Context, issueID uint) (*issue.Issue, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, issueID)
	}
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) GetByThreadToken(ctx context.Context, token string) (*issue.Issue, error) {
	if m.getByThreadTokenFunc != nil {
		return m.getByThreadTokenFunc(ctx, token)
	}
	return nil, apperrors.NewNotFoundError("issue not found")
}

func (m *mockIssueRepo) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockMessageRepo struct {
	saveFunc           func(ctx context.Context, msg *issue.Message) error
	updateFunc         func(ctx context.Context, msg *issue.Message) error
	getByIDFunc        func(ctx context.Context, messageID uint) (*issue.Message, error)
	listByIssueIDFunc  func(ctx context.Context, issueID uint) ([]*issue.Message, error)
	findRecentSentFunc func(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error)

	saved   []*issue.Message
	updated []*issue.Message
}

func (m *mockMessageRepo) Save(ctx context.Context, msg *issue.Message) error {
	m.saved = append(m.saved, msg)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	if msg.ID() == 0 {
		_ = msg.SetID(uint(len(m.saved)))
	}
	return nil
}

func (m *mockMessageRepo) Update(ctx context.Context, msg *issue.Message) error {
	m.updated = append(m.updated, msg)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, messageID uint) (*issue.Message, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, messageID)
	}
	return nil, apperrors.NewNotFoundError("message not found")
}

func (m *mockMessageRepo) GetByRFCMessageID(ctx context.Context, rfcMessageID string) (*issue.Message, error) {
	return nil, apperrors.NewNotFoundError("message not found")
}

func (m *mockMessageRepo) ListByIssueID(ctx context.Context, issueID uint) ([]*issue.Message, error) {
	if m.listByIssueIDFunc != nil {
		return m.listByIssueIDFunc(ctx, issueID)
	}
	return nil, nil
}

func (m *mockMessageRepo) FindRecentSent(ctx context.Context, issueID uint, to, subject, body string, since time.Time) (*issue.Message, error) {
	if m.findRecentSentFunc != nil {
		return m.findRecentSentFunc(ctx, issueID, to, subject, body, since)
	}
	return nil, nil
}

func (m *mockMessageRepo) CountPendingApproval(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (m *mockMessageRepo) ListPendingApproval(ctx context.Context, olderThan time.Time) ([]*issue.Message, error) {
	return nil, nil
}

type mockVendorRepo struct {
	getByIDFunc  func(ctx context.Context, id uint) (*vendor.Vendor, error)
	getBySIDFunc func(ctx context.Context, sid string) (*vendor.Vendor, error)
}

func (m *mockVendorRepo) Save(ctx context.Context, v *vendor.Vendor) error   { return nil }
func (m *mockVendorRepo) Update(ctx context.Context, v *vendor.Vendor) error { return nil }
func (m *mockVendorRepo) Delete(ctx context.Context, id uint) error          { return nil }

func (m *mockVendorRepo) GetByID(ctx context.Context, id uint) (*vendor.Vendor, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("vendor not found")
}

func (m *mockVendorRepo) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("vendor not found")
}

func (m *mockVendorRepo) List(ctx context.Context, filter vendor.Filter) ([]*vendor.Vendor, int64, error) {
	return nil, 0, nil
}

type mockApartmentRepo struct {
	getByIDFunc  func(ctx context.Context, id uint) (*apartment.Apartment, error)
	getBySIDFunc func(ctx context.Context, sid string) (*apartment.Apartment, error)
}

func (m *mockApartmentRepo) Save(ctx context.Context, a *apartment.Apartment) error   { return nil }
func (m *mockApartmentRepo) Update(ctx context.Context, a *apartment.Apartment) error { return nil }
func (m *mockApartmentRepo) Delete(ctx context.Context, id uint) error                { return nil }

func (m *mockApartmentRepo) GetByID(ctx context.Context, id uint) (*apartment.Apartment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("apartment not found")
}

func (m *mockApartmentRepo) GetBySID(ctx context.Context, sid string) (*apartment.Apartment, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("apartment not found")
}

func (m *mockApartmentRepo) List(ctx context.Context, filter apartment.Filter) ([]*apartment.Apartment, int64, error) {
	return nil, 0, nil
}

type mockProductRepo struct {
	getBySIDFunc func(ctx context.Context, sid string) (*product.Product, error)
}

func (m *mockProductRepo) Save(ctx context.Context, p *product.Product) error   { return nil }
func (m *mockProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, id uint) error            { return nil }

func (m *mockProductRepo) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	return nil, apperrors.NewNotFoundError("product not found")
}

func (m *mockProductRepo) GetBySID(ctx context.Context, sid string) (*product.Product, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (m *mockProductRepo) List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

type mockOrderRepo struct {
	getBySIDFunc func(ctx context.Context, sid string) (*order.Order, error)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *order.Order) error   { return nil }
func (m *mockOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }
func (m *mockOrderRepo) Delete(ctx context.Context, id uint) error        { return nil }

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	if m.getBySIDFunc != nil {
		return m.getBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return nil, apperrors.NewNotFoundError("order not found")
}

func (m *mockOrderRepo) List(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type mockDrafter struct {
	draftInitialFunc func(ctx context.Context, issueCtx ai.IssueContext) (*ai.InitialDraft, error)
	draftReplyFunc   func(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error)
	analyzeFunc      func(ctx context.Context, issueCtx ai.IssueContext, body string) (*ai.ReplyAnalysis, error)
}

func (m *mockDrafter) DraftInitialReport(ctx context.Context, issueCtx ai.IssueContext) (*ai.InitialDraft, error) {
	if m.draftInitialFunc != nil {
		return m.draftInitialFunc(ctx, issueCtx)
	}
	return &ai.InitialDraft{
		Subject:     "Damage issue report",
		Opening:     "Dear vendor, we found a problem.",
		Closing:     "Please reply with your proposed resolution.",
		Confidence:  0.9,
		GeneratedBy: "mock",
	}, nil
}

func (m *mockDrafter) DraftReply(ctx context.Context, issueCtx ai.IssueContext, history []ai.ConversationEntry, latest string) (*ai.ReplyDraft, error) {
	if m.draftReplyFunc != nil {
		return m.draftReplyFunc(ctx, issueCtx, history, latest)
	}
	return &ai.ReplyDraft{Reply: "Thanks for the update.", Confidence: 0.9, GeneratedBy: "mock"}, nil
}

func (m *mockDrafter) AnalyzeReply(ctx context.Context, issueCtx ai.IssueContext, body string) (*ai.ReplyAnalysis, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, issueCtx, body)
	}
	return &ai.ReplyAnalysis{
		Sentiment:  ai.SentimentNeutral,
		Intent:     ai.IntentUnclear,
		Summary:    "Vendor replied.",
		NextAction: "Await clarification.",
		Confidence: 0.9,
	}, nil
}

type notifyCall struct {
	ntype   notification.NotificationType
	title   string
	content string
	issueID *uint
}

type mockNotifier struct {
	calls []notifyCall
}

func (m *mockNotifier) NotifyAdmins(ctx context.Context, ntype notification.NotificationType, title, content string, relatedIssueID *uint) error {
	m.calls = append(m.calls, notifyCall{ntype: ntype, title: title, content: content, issueID: relatedIssueID})
	return nil
}

type mockEventPublisher struct {
	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(list []events.DomainEvent) error {
	m.published = append(m.published, list...)
	return nil
}

func (m *mockEventPublisher) typesPublished() []string {
	types := make([]string, 0, len(m.published))
	for _, event := range m.published {
		types = append(types, event.GetEventType())
	}
	return types
}

type sentMail struct {
	mail *email.OutboundMail
}

type mockMailer struct {
	sendFunc func(mail *email.OutboundMail) (string, error)
	sent     []sentMail
}

func (m *mockMailer) Send(mail *email.OutboundMail) (string, error) {
	m.sent = append(m.sent, sentMail{mail: mail})
	if m.sendFunc != nil {
		return m.sendFunc(mail)
	}
	return "<generated@fitout.test>", nil
}
