package application

import (
	"context"
	"fmt"

	"matchday/events"

	log "github.com/sirupsen/logrus"
)

// RegisterSubscriptions wires the application's event handlers onto the bus.
// Handlers run asynchronously after the originating transaction commits.
func RegisterSubscriptions(bus *events.Bus) {
	bus.Subscribe(events.EventTypePointsChange, handlePointsChange)
	bus.Subscribe(events.EventTypeUserCreated, handleUserCreated)
	bus.Subscribe(events.EventTypeMatchSettled, handleMatchSettled)
	bus.Subscribe(events.EventTypeRedemptionStateChange, handleRedemptionStateChange)
}

func handlePointsChange(ctx context.Context, event events.Event) {
	e, ok := event.(events.PointsChangeEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"userID":       e.UserID,
		"changeAmount": e.ChangeAmount,
		"pointsAfter":  e.PointsAfter,
		"type":         e.TransactionType,
	}).Info("Points changed")
}

func handleUserCreated(ctx context.Context, event events.Event) {
	e, ok := event.(events.UserCreatedEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"userID":   e.UserID,
		"username": e.Username,
	}).Info("User registered")
}

func handleMatchSettled(ctx context.Context, event events.Event) {
	e, ok := event.(events.MatchSettledEvent)
	if !ok {
		return
	}
	entry := log.WithFields(log.Fields{
		"matchID":     e.MatchID,
		"score":       fmt.Sprintf("%d-%d", e.HomeScore, e.AwayScore),
		"result":      e.Result,
		"predictions": e.PredictionsTotal,
		"failed":      e.PredictionsFailed,
	})
	if e.PredictionsFailed > 0 {
		entry.Warn("Match settled with failed predictions")
		return
	}
	entry.Info("Match settled")
}

func handleRedemptionStateChange(ctx context.Context, event events.Event) {
	e, ok := event.(events.RedemptionStateChangeEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"redemptionID": e.RedemptionID,
		"userID":       e.UserID,
		"giftID":       e.GiftID,
		"newStatus":    e.NewStatus,
	}).Info("Redemption state changed")
}
