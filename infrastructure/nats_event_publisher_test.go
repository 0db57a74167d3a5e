package infrastructure

import (
	"encoding/json"
	"testing"

	"matchday/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubjectMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.PointsChangeEvent{UserID: 1}, "users.points_changed"},
		{events.UserCreatedEvent{UserID: 1}, "users.created"},
		{events.MatchSettledEvent{MatchID: 1}, "matches.settled"},
		{events.RedemptionStateChangeEvent{RedemptionID: 1}, "redemptions.state_changed"},
	}

	for _, tt := range tests {
		subject := mapper.MapEventToSubject(tt.event)
		assert.Equal(t, tt.subject, subject)
		assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
	}
}

func TestEventSubjectMapper_AllSubjectsCovered(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	for _, subject := range mapper.GetAllSubjects() {
		eventType := mapper.MapSubjectToEventType(subject)
		assert.NotEqual(t, events.EventType(subject), eventType,
			"subject %s does not map back to a known event type", subject)
	}
}

func TestNewEnvelope(t *testing.T) {
	t.Parallel()

	event := events.MatchSettledEvent{
		MatchID:   42,
		HomeScore: 2,
		AwayScore: 1,
	}

	envelope, err := newEnvelope(event)
	require.NoError(t, err)

	assert.Equal(t, "match_settled", envelope.EventType)
	assert.Equal(t, "matchday", envelope.SourceService)
	assert.False(t, envelope.Timestamp.IsZero())

	_, err = uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var decoded events.MatchSettledEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &decoded))
	assert.Equal(t, int64(42), decoded.MatchID)
	assert.Equal(t, 2, decoded.HomeScore)
	assert.Equal(t, 1, decoded.AwayScore)
}
