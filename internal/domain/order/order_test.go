package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_TotalFollowsItems(t *testing.T) {
	o, err := NewOrder(1, 2, "EUR")
	require.NoError(t, err)

	chair, err := NewItem(10, "Dining chair", 4, 12900)
	require.NoError(t, err)
	table, err := NewItem(11, "Dining table", 1, 64900)
	require.NoError(t, err)

	require.NoError(t, o.AddItem(chair))
	require.NoError(t, o.AddItem(table))

	assert.Equal(t, int64(4*12900+64900), o.TotalAmount())
}

func TestOrder_PlaceRequiresItems(t *testing.T) {
	o, err := NewOrder(1, 2, "EUR")
	require.NoError(t, err)

	assert.Error(t, o.Place())

	item, err := NewItem(10, "Dining chair", 1, 12900)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))

	require.NoError(t, o.Place())
	assert.Equal(t, StatusPlaced, o.Status())
}

func TestOrder_ItemsFrozenAfterPlacing(t *testing.T) {
	o, err := NewOrder(1, 2, "EUR")
	require.NoError(t, err)

	item, err := NewItem(10, "Dining chair", 1, 12900)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
	require.NoError(t, o.Place())

	another, err := NewItem(11, "Dining table", 1, 64900)
	require.NoError(t, err)
	assert.Error(t, o.AddItem(another))
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusDraft, StatusPlaced, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusDelivered, false},
		{StatusPlaced, StatusConfirmed, true},
		{StatusConfirmed, StatusInDelivery, true},
		{StatusInDelivery, StatusDelivered, true},
		{StatusInDelivery, StatusCancelled, false},
		{StatusDelivered, StatusDraft, false},
		{StatusCancelled, StatusPlaced, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
