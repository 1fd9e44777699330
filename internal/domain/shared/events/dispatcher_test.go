package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/shared/logger"
)

func TestInMemoryEventDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryEventDispatcher(10, logger.NewLogger())
	require.NoError(t, dispatcher.Start())
	defer dispatcher.Stop()

	received := make(chan DomainEvent, 1)
	handler := NewSimpleEventHandler("issue.created", func(event DomainEvent) error {
		received <- event
		return nil
	})
	require.NoError(t, dispatcher.Subscribe("issue.created", handler))

	require.NoError(t, dispatcher.Publish(NewBaseEvent("iss_abc123", "issue.created")))

	select {
	case event := <-received:
		assert.Equal(t, "iss_abc123", event.GetAggregateID())
		assert.Equal(t, "issue.created", event.GetEventType())
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestInMemoryEventDispatcher_IgnoresUnrelatedEventTypes(t *testing.T) {
	dispatcher := NewInMemoryEventDispatcher(10, logger.NewLogger())
	require.NoError(t, dispatcher.Start())

	received := make(chan DomainEvent, 1)
	handler := NewSimpleEventHandler("issue.closed", func(event DomainEvent) error {
		received <- event
		return nil
	})
	require.NoError(t, dispatcher.Subscribe("issue.closed", handler))

	require.NoError(t, dispatcher.Publish(NewBaseEvent("iss_abc123", "issue.created")))
	require.NoError(t, dispatcher.Stop())

	select {
	case <-received:
		t.Fatal("handler must not receive other event types")
	default:
	}
}

func TestInMemoryEventDispatcher_PublishBeforeStartRejected(t *testing.T) {
	dispatcher := NewInMemoryEventDispatcher(10, logger.NewLogger())

	err := dispatcher.Publish(NewBaseEvent("iss_abc123", "issue.created"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
}

func TestInMemoryEventDispatcher_SubscribeValidation(t *testing.T) {
	dispatcher := NewInMemoryEventDispatcher(10, logger.NewLogger())

	assert.Error(t, dispatcher.Subscribe("", NewSimpleEventHandler("x", nil)))
	assert.Error(t, dispatcher.Subscribe("issue.created", nil))
}
