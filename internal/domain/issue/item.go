package issue

import (
	"fmt"
	"time"

	"fitout/internal/shared/biztime"
)

// Item is an affected line item on an issue, for example three damaged
// chairs out of a larger delivery.
type Item struct {
	id          uint
	issueID     uint
	productName string
	quantity    int
	issueTags   []string
	description string
	imageRef    string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(
	issueID uint,
	productName string,
	quantity int,
	issueTags []string,
	description string,
	imageRef string,
) (*Item, error) {
	if len(productName) == 0 {
		return nil, fmt.Errorf("product name is required")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if issueTags == nil {
		issueTags = []string{}
	}

	now := biztime.NowUTC()
	return &Item{
		issueID:     issueID,
		productName: productName,
		quantity:    quantity,
		issueTags:   issueTags,
		description: description,
		imageRef:    imageRef,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructItem(
	id uint,
	issueID uint,
	productName string,
	quantity int,
	issueTags []string,
	description string,
	imageRef string,
	createdAt, updatedAt time.Time,
) (*Item, error) {
	if id == 0 {
		return nil, fmt.Errorf("item ID cannot be zero")
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if issueTags == nil {
		issueTags = []string{}
	}

	return &Item{
		id:          id,
		issueID:     issueID,
		productName: productName,
		quantity:    quantity,
		issueTags:   issueTags,
		description: description,
		imageRef:    imageRef,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (it *Item) ID() uint            { return it.id }
func (it *Item) IssueID() uint       { return it.issueID }
func (it *Item) ProductName() string { return it.productName }
func (it *Item) Quantity() int       { return it.quantity }
func (it *Item) Description() string { return it.description }
func (it *Item) ImageRef() string    { return it.imageRef }
func (it *Item) CreatedAt() time.Time { return it.createdAt }
func (it *Item) UpdatedAt() time.Time { return it.updatedAt }

func (it *Item) IssueTags() []string {
	tagsCopy := make([]string, len(it.issueTags))
	copy(tagsCopy, it.issueTags)
	return tagsCopy
}

func (it *Item) SetID(id uint) error {
	if it.id != 0 {
		return fmt.Errorf("item ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("item ID cannot be zero")
	}
	it.id = id
	return nil
}

func (it *Item) SetIssueID(issueID uint) error {
	if it.issueID != 0 {
		return fmt.Errorf("item issue ID is already set")
	}
	if issueID == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	it.issueID = issueID
	return nil
}
