package usecases

import (
	"fitout/internal/domain/issue"
	"fitout/internal/domain/shared/events"
	"fitout/internal/shared/logger"
)

// publishEvent dispatches a lifecycle event without failing the use case.
// A nil publisher disables event emission.
func publishEvent(pub events.EventPublisher, log logger.Interface, event events.DomainEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(event); err != nil {
		log.Warnw("failed to dispatch event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err)
	}
}

var activityEventTypes = []string{
	issue.EventIssueCreated,
	issue.EventIssueStatusChanged,
	issue.EventIssueEscalated,
	issue.EventConversationStarted,
	issue.EventVendorReplyReceived,
	issue.EventDraftPendingApproval,
	issue.EventMessageSent,
}

// RegisterActivityLog subscribes a structured-log activity trail to every
// issue lifecycle event. The trail replaces implicit persistence hooks: only
// explicit publishes at mutation points show up here.
func RegisterActivityLog(sub events.EventSubscriber, log logger.Interface) error {
	activity := log.Named("activity")
	for _, eventType := range activityEventTypes {
		handler := events.NewSimpleEventHandler(eventType, func(event events.DomainEvent) error {
			activity.Infow("issue activity",
				"event_type", event.GetEventType(),
				"issue_sid", event.GetAggregateID(),
				"occurred_at", event.GetOccurredAt())
			return nil
		})
		if err := sub.Subscribe(eventType, handler); err != nil {
			return err
		}
	}
	return nil
}
