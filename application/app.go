package application

import (
	"context"
	"errors"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/services"
	"matchday/domain/utils"
	"matchday/events"

	log "github.com/sirupsen/logrus"
)

// App is the orchestration facade over the domain services. It owns the
// transaction boundaries: operations that must be atomic run inside a unit
// of work, while the redemption sequence deliberately runs on pool-backed
// repositories so each step commits on its own and failures are compensated
// instead of rolled back.
type App struct {
	uowFactory     UnitOfWorkFactory
	publisher      interfaces.EventPublisher
	startingPoints int64

	// Pool-backed repositories for reads and for the compensated redemption path
	userRepo       interfaces.UserRepository
	ledgerRepo     interfaces.PointTransactionRepository
	teamRepo       interfaces.TeamRepository
	matchRepo      interfaces.MatchRepository
	predictionRepo interfaces.PredictionRepository
	giftRepo       interfaces.GiftRepository
	redemptionRepo interfaces.RedemptionRepository

	redemptionService interfaces.RedemptionService
	predictionService interfaces.PredictionService
	matchService      interfaces.MatchService
}

// Config carries the dependencies for constructing an App
type Config struct {
	UnitOfWorkFactory UnitOfWorkFactory
	Publisher         interfaces.EventPublisher
	StartingPoints    int64

	UserRepository             interfaces.UserRepository
	PointTransactionRepository interfaces.PointTransactionRepository
	TeamRepository             interfaces.TeamRepository
	MatchRepository            interfaces.MatchRepository
	PredictionRepository       interfaces.PredictionRepository
	GiftRepository             interfaces.GiftRepository
	RedemptionRepository       interfaces.RedemptionRepository
}

// New creates the application facade
func New(cfg Config) *App {
	return &App{
		uowFactory:     cfg.UnitOfWorkFactory,
		publisher:      cfg.Publisher,
		startingPoints: cfg.StartingPoints,
		userRepo:       cfg.UserRepository,
		ledgerRepo:     cfg.PointTransactionRepository,
		teamRepo:       cfg.TeamRepository,
		matchRepo:      cfg.MatchRepository,
		predictionRepo: cfg.PredictionRepository,
		giftRepo:       cfg.GiftRepository,
		redemptionRepo: cfg.RedemptionRepository,

		redemptionService: services.NewRedemptionService(
			cfg.GiftRepository,
			cfg.UserRepository,
			cfg.RedemptionRepository,
			cfg.PointTransactionRepository,
			cfg.Publisher,
		),
		predictionService: services.NewPredictionService(
			cfg.MatchRepository,
			cfg.PredictionRepository,
			cfg.UserRepository,
		),
		matchService: services.NewMatchService(
			cfg.MatchRepository,
			cfg.TeamRepository,
		),
	}
}

// withUnitOfWork runs fn inside a transaction, committing on success and
// rolling back on error
func (a *App) withUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to rollback transaction")
		}
		return err
	}

	return uow.Commit()
}

// RegisterUser creates a user with the configured starting balance. The user
// row, the opening ledger entry and the created event commit together.
func (a *App) RegisterUser(ctx context.Context, username, email string) (*entities.User, error) {
	var user *entities.User
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		user, err = uow.UserRepository().Create(ctx, username, email, a.startingPoints)
		if err != nil {
			return fmt.Errorf("failed to create user %q: %w", username, err)
		}

		if a.startingPoints > 0 {
			entry := &entities.PointTransaction{
				UserID:          user.ID,
				PointsBefore:    0,
				PointsAfter:     a.startingPoints,
				ChangeAmount:    a.startingPoints,
				TransactionType: entities.TransactionTypeInitial,
			}
			if err := utils.RecordPointChange(ctx, uow.PointTransactionRepository(), uow.EventBus(), entry); err != nil {
				return fmt.Errorf("failed to record starting balance: %w", err)
			}
		}

		return uow.EventBus().Publish(events.UserCreatedEvent{
			UserID:         user.ID,
			Username:       user.Username,
			StartingPoints: a.startingPoints,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SettleMatch finalizes the match and settles every open prediction against
// the final score. Finalization commits first and is never rolled back;
// each prediction then settles in its own transaction, so one failing
// prediction cannot take down the credits of the others. Failures are
// collected and reported as a PartialSettlementError for retry.
func (a *App) SettleMatch(ctx context.Context, matchID int64, homeScore, awayScore int) (*interfaces.SettlementResult, error) {
	var match *entities.Match
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := a.settlementService(uow)
		var err error
		match, err = svc.FinalizeMatch(ctx, matchID, homeScore, awayScore)
		return err
	})
	if err != nil {
		return nil, err
	}

	return a.settleOpenPredictions(ctx, match)
}

// RetrySettlement re-runs settlement over the predictions of an already
// finalized match that were left unsettled by a previous partial failure.
func (a *App) RetrySettlement(ctx context.Context, matchID int64) (*interfaces.SettlementResult, error) {
	match, err := a.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, entities.ErrMatchNotFound
	}
	if !match.IsSettled() {
		return nil, fmt.Errorf("match %d is not finalized: %w", matchID, entities.ErrMatchNotOpen)
	}

	return a.settleOpenPredictions(ctx, match)
}

func (a *App) settleOpenPredictions(ctx context.Context, match *entities.Match) (*interfaces.SettlementResult, error) {
	predictions, err := a.predictionRepo.GetUnsettledByMatch(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open predictions for match %d: %w", match.ID, err)
	}

	result := &interfaces.SettlementResult{
		Match:            match,
		PredictionsTotal: len(predictions),
	}

	for _, prediction := range predictions {
		points, err := a.settlePredictionTx(ctx, prediction, match)
		if err != nil {
			// Lost a race with a concurrent settlement pass: the prediction is
			// already credited, not failed
			if errors.Is(err, entities.ErrPredictionSettled) {
				continue
			}
			log.WithError(err).WithFields(log.Fields{
				"predictionID": prediction.ID,
				"matchID":      match.ID,
			}).Error("Failed to settle prediction")
			result.FailedPredictionIDs = append(result.FailedPredictionIDs, prediction.ID)
			continue
		}
		result.PredictionsSettled++
		result.PointsCredited += int64(points)
	}

	if err := a.publisher.Publish(events.MatchSettledEvent{
		MatchID:           match.ID,
		HomeScore:         *match.HomeScore,
		AwayScore:         *match.AwayScore,
		Result:            *match.Result,
		PredictionsTotal:  result.PredictionsTotal,
		PredictionsFailed: len(result.FailedPredictionIDs),
	}); err != nil {
		log.WithError(err).WithField("matchID", match.ID).Error("Failed to publish match settled event")
	}

	if result.HasFailures() {
		return result, &entities.PartialSettlementError{
			MatchID:             match.ID,
			FailedPredictionIDs: result.FailedPredictionIDs,
		}
	}

	return result, nil
}

// settlePredictionTx settles a single prediction inside its own transaction:
// the outcome write, the user credit and the ledger entry commit together.
func (a *App) settlePredictionTx(ctx context.Context, prediction *entities.Prediction, match *entities.Match) (int, error) {
	var points int
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := a.settlementService(uow)
		var err error
		points, err = svc.SettlePrediction(ctx, prediction, match)
		return err
	})
	return points, err
}

func (a *App) settlementService(uow UnitOfWork) interfaces.SettlementService {
	return services.NewSettlementService(
		uow.MatchRepository(),
		uow.PredictionRepository(),
		uow.UserRepository(),
		uow.PointTransactionRepository(),
		uow.EventBus(),
	)
}

// CreatePrediction records a user's score prediction for an upcoming match
func (a *App) CreatePrediction(ctx context.Context, userID, matchID int64, homeScore, awayScore int) (*entities.Prediction, error) {
	return a.predictionService.CreatePrediction(ctx, userID, matchID, homeScore, awayScore)
}

// CreateMatch schedules an upcoming match between two active teams
func (a *App) CreateMatch(ctx context.Context, params interfaces.CreateMatchParams) (*entities.Match, error) {
	return a.matchService.CreateMatch(ctx, params)
}

// SetMatchLive transitions an upcoming match to live
func (a *App) SetMatchLive(ctx context.Context, matchID int64) error {
	return a.matchRepo.SetLive(ctx, matchID)
}

// Redeem exchanges points for a gift. Runs outside any enclosing
// transaction: each step commits on its own and failed sequences are
// compensated, never rolled back.
func (a *App) Redeem(ctx context.Context, userID, giftID int64) (*entities.GiftRedemption, error) {
	return a.redemptionService.Redeem(ctx, userID, giftID)
}

// SetRedemptionStatus completes or cancels a pending redemption. Runs inside
// a transaction so a cancellation's refund, stock restore and status write
// commit together.
func (a *App) SetRedemptionStatus(ctx context.Context, redemptionID int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error) {
	var redemption *entities.GiftRedemption
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewRedemptionService(
			uow.GiftRepository(),
			uow.UserRepository(),
			uow.RedemptionRepository(),
			uow.PointTransactionRepository(),
			uow.EventBus(),
		)
		var err error
		redemption, err = svc.SetStatus(ctx, redemptionID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

// GetUser returns a user by ID
func (a *App) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

// GetUserLedger returns a user's most recent point transactions
func (a *App) GetUserLedger(ctx context.Context, userID int64, limit int) ([]*entities.PointTransaction, error) {
	return a.ledgerRepo.GetByUser(ctx, userID, limit)
}

// GetMatch returns a match by ID
func (a *App) GetMatch(ctx context.Context, matchID int64) (*entities.Match, error) {
	match, err := a.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, entities.ErrMatchNotFound
	}
	return match, nil
}

// GetMatchesByStatus returns matches in the given lifecycle state
func (a *App) GetMatchesByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	return a.matchRepo.GetByStatus(ctx, status)
}

// GetUserPredictions returns a user's predictions, newest first
func (a *App) GetUserPredictions(ctx context.Context, userID int64) ([]*entities.Prediction, error) {
	return a.predictionRepo.GetByUser(ctx, userID)
}

// GetActiveTeams returns all active teams
func (a *App) GetActiveTeams(ctx context.Context) ([]*entities.Team, error) {
	return a.teamRepo.GetActive(ctx)
}

// CreateTeam creates a new team
func (a *App) CreateTeam(ctx context.Context, team *entities.Team) error {
	return a.teamRepo.Create(ctx, team)
}

// SetTeamActive activates or deactivates a team
func (a *App) SetTeamActive(ctx context.Context, teamID int64, active bool) error {
	return a.teamRepo.SetActive(ctx, teamID, active)
}

// GetActiveGifts returns the redeemable gift catalog
func (a *App) GetActiveGifts(ctx context.Context) ([]*entities.Gift, error) {
	return a.giftRepo.GetActive(ctx)
}

// CreateGift creates a new gift
func (a *App) CreateGift(ctx context.Context, gift *entities.Gift) error {
	return a.giftRepo.Create(ctx, gift)
}

// UpdateGift updates a gift's catalog fields
func (a *App) UpdateGift(ctx context.Context, gift *entities.Gift) error {
	return a.giftRepo.Update(ctx, gift)
}

// GetUserRedemptions returns a user's redemption history, newest first
func (a *App) GetUserRedemptions(ctx context.Context, userID int64) ([]*entities.GiftRedemption, error) {
	return a.redemptionRepo.GetByUser(ctx, userID)
}

// GetAllRedemptions returns all redemptions, newest first
func (a *App) GetAllRedemptions(ctx context.Context) ([]*entities.GiftRedemption, error) {
	return a.redemptionRepo.GetAll(ctx)
}
