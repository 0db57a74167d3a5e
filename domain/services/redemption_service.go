package services

import (
	"context"
	"errors"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"
	"matchday/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type redemptionService struct {
	giftRepo       interfaces.GiftRepository
	userRepo       interfaces.UserRepository
	redemptionRepo interfaces.RedemptionRepository
	ledgerRepo     interfaces.PointTransactionRepository
	eventPublisher interfaces.EventPublisher
}

// NewRedemptionService creates a new redemption service
func NewRedemptionService(
	giftRepo interfaces.GiftRepository,
	userRepo interfaces.UserRepository,
	redemptionRepo interfaces.RedemptionRepository,
	ledgerRepo interfaces.PointTransactionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.RedemptionService {
	return &redemptionService{
		giftRepo:       giftRepo,
		userRepo:       userRepo,
		redemptionRepo: redemptionRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// Redeem executes a gift redemption as a compensated sequence: debit the
// user, decrement stock, create the pending record. Each step that fails
// unwinds the steps already applied, so either all three effects exist or
// none do. No lock is held across steps.
func (s *redemptionService) Redeem(ctx context.Context, userID, giftID int64) (*entities.GiftRedemption, error) {
	gift, err := s.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift %d: %w", giftID, err)
	}
	if gift == nil {
		return nil, entities.ErrGiftNotFound
	}
	if !gift.IsAvailable() {
		return nil, entities.ErrGiftUnavailable
	}

	newBalance, err := s.userRepo.DebitPoints(ctx, userID, gift.PointsCost)
	if err != nil {
		return nil, fmt.Errorf("failed to debit user %d: %w", userID, err)
	}

	if err := s.giftRepo.DecrementStock(ctx, giftID); err != nil {
		// The user has been debited with no stock delivered; the debit must
		// be unwound even if the caller has already gone away.
		s.compensateDebit(context.WithoutCancel(ctx), userID, gift, newBalance)
		if errors.Is(err, entities.ErrOutOfStock) {
			return nil, entities.ErrGiftUnavailable
		}
		return nil, fmt.Errorf("failed to decrement stock for gift %d: %w", giftID, err)
	}

	redemption := &entities.GiftRedemption{
		Reference:  uuid.New(),
		UserID:     userID,
		GiftID:     giftID,
		PointsUsed: gift.PointsCost,
		Status:     entities.RedemptionStatusPending,
	}
	if err := s.redemptionRepo.Create(ctx, redemption); err != nil {
		unwindCtx := context.WithoutCancel(ctx)
		if incErr := s.giftRepo.IncrementStock(unwindCtx, giftID); incErr != nil {
			log.WithError(incErr).WithField("giftID", giftID).Error("Failed to restore stock while unwinding redemption")
		}
		s.compensateDebit(unwindCtx, userID, gift, newBalance)
		return nil, fmt.Errorf("failed to create redemption record: %w", err)
	}

	relatedID := redemption.ID
	relatedType := entities.RelatedTypeRedemption
	entry := &entities.PointTransaction{
		UserID:          userID,
		PointsBefore:    newBalance + gift.PointsCost,
		PointsAfter:     newBalance,
		ChangeAmount:    -gift.PointsCost,
		TransactionType: entities.TransactionTypeGiftRedemption,
		Metadata: map[string]any{
			"gift_id":   giftID,
			"gift_name": gift.Name,
			"reference": redemption.Reference.String(),
		},
		RelatedID:   &relatedID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordPointChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		log.WithError(err).WithField("redemptionID", redemption.ID).Error("Failed to record redemption debit in ledger")
	}

	if err := s.eventPublisher.Publish(events.RedemptionStateChangeEvent{
		RedemptionID: redemption.ID,
		UserID:       userID,
		GiftID:       giftID,
		NewStatus:    string(entities.RedemptionStatusPending),
	}); err != nil {
		log.WithError(err).Error("Failed to publish redemption created event")
	}

	return redemption, nil
}

// SetStatus transitions a pending redemption to completed or cancelled.
// Completion is a status write only. Cancellation additionally refunds the
// points snapshot and restores one unit of stock; the status check-and-set
// guarantees a redemption is never refunded twice.
func (s *redemptionService) SetStatus(ctx context.Context, redemptionID int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error) {
	if !status.IsValid() || status == entities.RedemptionStatusPending {
		return nil, fmt.Errorf("invalid target status %q", status)
	}

	redemption, err := s.redemptionRepo.UpdateStatus(ctx, redemptionID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update redemption %d status: %w", redemptionID, err)
	}

	if status == entities.RedemptionStatusCancelled {
		newBalance, err := s.userRepo.CreditPoints(ctx, redemption.UserID, redemption.PointsUsed)
		if err != nil {
			return nil, fmt.Errorf("failed to refund user %d: %w", redemption.UserID, err)
		}

		relatedID := redemption.ID
		relatedType := entities.RelatedTypeRedemption
		entry := &entities.PointTransaction{
			UserID:          redemption.UserID,
			PointsBefore:    newBalance - redemption.PointsUsed,
			PointsAfter:     newBalance,
			ChangeAmount:    redemption.PointsUsed,
			TransactionType: entities.TransactionTypeGiftRefund,
			Metadata: map[string]any{
				"gift_id":   redemption.GiftID,
				"reference": redemption.Reference.String(),
			},
			RelatedID:   &relatedID,
			RelatedType: &relatedType,
		}
		if err := utils.RecordPointChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
			return nil, fmt.Errorf("failed to record refund: %w", err)
		}

		if err := s.giftRepo.IncrementStock(ctx, redemption.GiftID); err != nil {
			return nil, fmt.Errorf("failed to restore stock for gift %d: %w", redemption.GiftID, err)
		}
	}

	if err := s.eventPublisher.Publish(events.RedemptionStateChangeEvent{
		RedemptionID: redemption.ID,
		UserID:       redemption.UserID,
		GiftID:       redemption.GiftID,
		OldStatus:    string(entities.RedemptionStatusPending),
		NewStatus:    string(status),
	}); err != nil {
		log.WithError(err).Error("Failed to publish redemption state change event")
	}

	return redemption, nil
}

// compensateDebit credits back an already-applied debit. The debit is only
// written to the ledger once the whole sequence succeeds, so a compensated
// debit leaves no ledger trace: the net balance effect is zero.
func (s *redemptionService) compensateDebit(ctx context.Context, userID int64, gift *entities.Gift, balanceAfterDebit int64) {
	if _, err := s.userRepo.CreditPoints(ctx, userID, gift.PointsCost); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID": userID,
			"giftID": gift.ID,
			"amount": gift.PointsCost,
		}).Error("Failed to compensate redemption debit")
		return
	}

	log.WithFields(log.Fields{
		"userID":        userID,
		"giftID":        gift.ID,
		"interimPoints": balanceAfterDebit,
	}).Warn("Redemption debit compensated")
}
