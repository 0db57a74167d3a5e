package utils

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/events"

	log "github.com/sirupsen/logrus"
)

// RecordPointChange records a ledger entry and emits the matching event.
// This is the single entry point for recording point balance changes: every
// credit or debit applied through the user repository is paired with exactly
// one call here.
func RecordPointChange(ctx context.Context, ledgerRepo interfaces.PointTransactionRepository, publisher interfaces.EventPublisher, entry *entities.PointTransaction) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid ledger entry: %w", err)
	}

	if err := ledgerRepo.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record point transaction: %w", err)
	}

	event := events.PointsChangeEvent{
		UserID:          entry.UserID,
		PointsBefore:    entry.PointsBefore,
		PointsAfter:     entry.PointsAfter,
		TransactionType: entry.TransactionType,
		ChangeAmount:    entry.ChangeAmount,
	}
	if err := publisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish points change event")
	}

	return nil
}
