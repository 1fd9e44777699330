package usecases

import (
	"context"

	"fitout/internal/domain/apartment"
	"fitout/internal/domain/issue"
	"fitout/internal/domain/vendor"
	"fitout/internal/infrastructure/ai"
)

// buildIssueContext assembles everything the drafter needs to know about a
// case: the issue, its affected items, the vendor and the apartment address.
func buildIssueContext(
	ctx context.Context,
	iss *issue.Issue,
	vnd *vendor.Vendor,
	apartments apartment.Repository,
) ai.IssueContext {
	items := make([]ai.ItemContext, 0, len(iss.Items()))
	for _, item := range iss.Items() {
		items = append(items, ai.ItemContext{
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Tags:        item.IssueTags(),
			Description: item.Description(),
		})
	}

	address := ""
	if apartments != nil {
		if apt, err := apartments.GetByID(ctx, iss.ApartmentID()); err == nil {
			address = apt.Address()
		}
	}

	vendorName := vnd.ContactName()
	if vendorName == "" {
		vendorName = vnd.CompanyName()
	}

	return ai.IssueContext{
		IssueSID:         iss.SID(),
		IssueType:        iss.IssueType(),
		Description:      iss.Description(),
		Impact:           iss.Impact(),
		Priority:         iss.Priority().String(),
		VendorName:       vendorName,
		ApartmentAddress: address,
		Items:            items,
	}
}

// conversationHistory converts the stored thread into drafter entries,
// oldest first, skipping internal notes and failed drafts.
func conversationHistory(messages []*issue.Message) []ai.ConversationEntry {
	history := make([]ai.ConversationEntry, 0, len(messages))
	for _, m := range messages {
		if m.Status().IsInternal() || m.Status().IsFailed() {
			continue
		}
		history = append(history, ai.ConversationEntry{
			Sender: m.Sender().String(),
			Body:   m.Body(),
		})
	}
	return history
}
