package testhelpers

import (
	"context"

	"matchday/domain/entities"
	"matchday/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username, email string, startingPoints int64) (*entities.User, error) {
	args := m.Called(ctx, username, email, startingPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) CreditPoints(ctx context.Context, userID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DebitPoints(ctx context.Context, userID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockPointTransactionRepository is a mock implementation of PointTransactionRepository
type MockPointTransactionRepository struct {
	mock.Mock
}

func (m *MockPointTransactionRepository) Record(ctx context.Context, tx *entities.PointTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPointTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.PointTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PointTransaction), args.Error(1)
}

// MockTeamRepository is a mock implementation of TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetActive(ctx context.Context) ([]*entities.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) SetLive(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatchRepository) FinalizeMatch(ctx context.Context, matchID int64, homeScore, awayScore int, result entities.MatchResult) (*entities.Match, error) {
	args := m.Called(ctx, matchID, homeScore, awayScore, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *entities.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id int64) (*entities.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetUnsettledByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Prediction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int64) (*entities.Prediction, error) {
	args := m.Called(ctx, userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) MarkSettled(ctx context.Context, predictionID int64, isCorrect bool, pointsEarned int) error {
	args := m.Called(ctx, predictionID, isCorrect, pointsEarned)
	return args.Error(0)
}

// MockGiftRepository is a mock implementation of GiftRepository
type MockGiftRepository struct {
	mock.Mock
}

func (m *MockGiftRepository) Create(ctx context.Context, gift *entities.Gift) error {
	args := m.Called(ctx, gift)
	return args.Error(0)
}

func (m *MockGiftRepository) GetByID(ctx context.Context, id int64) (*entities.Gift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Gift), args.Error(1)
}

func (m *MockGiftRepository) GetActive(ctx context.Context) ([]*entities.Gift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Gift), args.Error(1)
}

func (m *MockGiftRepository) Update(ctx context.Context, gift *entities.Gift) error {
	args := m.Called(ctx, gift)
	return args.Error(0)
}

func (m *MockGiftRepository) DecrementStock(ctx context.Context, giftID int64) error {
	args := m.Called(ctx, giftID)
	return args.Error(0)
}

func (m *MockGiftRepository) IncrementStock(ctx context.Context, giftID int64) error {
	args := m.Called(ctx, giftID)
	return args.Error(0)
}

// MockRedemptionRepository is a mock implementation of RedemptionRepository
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) Create(ctx context.Context, redemption *entities.GiftRedemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func (m *MockRedemptionRepository) GetByID(ctx context.Context, id int64) (*entities.GiftRedemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GiftRedemption), args.Error(1)
}

func (m *MockRedemptionRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.GiftRedemption, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GiftRedemption), args.Error(1)
}

func (m *MockRedemptionRepository) GetAll(ctx context.Context) ([]*entities.GiftRedemption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GiftRedemption), args.Error(1)
}

func (m *MockRedemptionRepository) UpdateStatus(ctx context.Context, id int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GiftRedemption), args.Error(1)
}

func (m *MockRedemptionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
