package infrastructure

import (
	"fmt"

	"matchday/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypePointsChange:
		return "users.points_changed"
	case events.EventTypeUserCreated:
		return "users.created"
	case events.EventTypeMatchSettled:
		return "matches.settled"
	case events.EventTypeRedemptionStateChange:
		return "redemptions.state_changed"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "users.points_changed":
		return events.EventTypePointsChange
	case "users.created":
		return events.EventTypeUserCreated
	case "matches.settled":
		return events.EventTypeMatchSettled
	case "redemptions.state_changed":
		return events.EventTypeRedemptionStateChange
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"users.points_changed",
		"users.created",
		"matches.settled",
		"redemptions.state_changed",
	}
}
