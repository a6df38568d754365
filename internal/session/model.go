package session

import (
	"context"
	"errors"
	"time"

	"github.com/streamhub/rewards-service/internal/rewards"
)

// ErrNotFound indicates the user has no session aggregate.
var ErrNotFound = errors.New("session not found")

// Repository stores one UserProgress aggregate per user id. Update serializes
// every closure against the store, which keeps each aggregate single-writer
// even when HTTP requests race.
type Repository interface {
	// Update runs fn against the user's aggregate, creating a fresh aggregate
	// on first use. fn must not retain the pointer beyond the call.
	Update(ctx context.Context, userID string, fn func(p *rewards.UserProgress) error) error
	// Delete discards the user's aggregate.
	Delete(ctx context.Context, userID string) error
	// UserIDs lists every user currently holding an aggregate.
	UserIDs(ctx context.Context) ([]string, error)
}

// TriviaView is the client-facing shape of a trivia question. The correct
// answer and explanation are withheld until the client submits an answer.
type TriviaView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ChallengeOverview pairs a catalog definition with the user's state for it.
type ChallengeOverview struct {
	rewards.ChallengeDefinition
	Status          rewards.ChallengeStatus `json:"status"`
	LastCompletedAt *time.Time              `json:"last_completed_at,omitempty"`
}

// OverviewResponse is returned by GET /v1/challenges/me.
type OverviewResponse struct {
	TotalPoints   int                  `json:"total_points"`
	MonthlyGoal   int                  `json:"monthly_goal"`
	RewardStatus  rewards.RewardStatus `json:"reward_status"`
	UserRank      int                  `json:"user_rank,omitempty"`
	PeekViewUsed  bool                 `json:"peek_view_used"`
	PeriodEndedAt *time.Time           `json:"period_ended_at,omitempty"`
	Challenges    []ChallengeOverview  `json:"challenges"`
	Trivia        TriviaView           `json:"trivia"`
}

// RefreshResponse reports which challenges a weekly-reset tick reopened.
type RefreshResponse struct {
	Refreshed []string `json:"refreshed"`
}

// Service exposes the progress engine keyed by authenticated user id. Each
// user owns an independent aggregate; operations against different users are
// unrelated.
type Service interface {
	ListChallenges(ctx context.Context) ([]rewards.ChallengeDefinition, error)
	GetOverview(ctx context.Context, userID string) (*OverviewResponse, error)
	CompleteChallenge(ctx context.Context, userID, challengeID string, points int) (*rewards.CompletionResult, error)
	TrackAction(ctx context.Context, userID string, kind rewards.ActionKind, contentID string) (*rewards.CompletionResult, error)
	ClaimReward(ctx context.Context, userID string) (*rewards.ClaimResult, error)
	EndPeriod(ctx context.Context, userID string) (*rewards.PeriodResult, error)
	ResetProgress(ctx context.Context, userID string) error
	RefreshWeekly(ctx context.Context, userID string) (*RefreshResponse, error)
	RefreshAll(ctx context.Context) (int, error)
	CurrentTrivia(ctx context.Context) (TriviaView, error)
}
