package rewards

import (
	"log/slog"
	"time"
)

// PointsAwarded is emitted when a challenge completion adds points.
type PointsAwarded struct {
	EventID     string    `json:"eventId"`
	ChallengeID string    `json:"challengeId"`
	Points      int       `json:"points"`
	TotalPoints int       `json:"totalPoints"`
	EmittedAt   time.Time `json:"emittedAt"`
}

// RewardStatusChanged is emitted whenever the reward status transitions.
type RewardStatusChanged struct {
	EventID     string       `json:"eventId"`
	Status      RewardStatus `json:"status"`
	TotalPoints int          `json:"totalPoints"`
	UserRank    int          `json:"userRank,omitempty"`
	EmittedAt   time.Time    `json:"emittedAt"`
}

// Listener receives engine signals. Delivery is fire-and-forget: the engine
// does not wait for or inspect any acknowledgment, and listeners must not
// call back into the engine.
type Listener interface {
	OnPointsAwarded(event PointsAwarded)
	OnRewardStatusChanged(event RewardStatusChanged)
}

// emitter fans signals out to every registered listener in registration order.
type emitter struct {
	listeners []Listener
}

func (e *emitter) pointsAwarded(event PointsAwarded) {
	for _, l := range e.listeners {
		l.OnPointsAwarded(event)
	}
}

func (e *emitter) rewardStatusChanged(event RewardStatusChanged) {
	for _, l := range e.listeners {
		l.OnRewardStatusChanged(event)
	}
}

// LogListener writes engine signals to a structured logger. It is the default
// consumer wired in the server; UI consumers subscribe the same way.
type LogListener struct {
	Logger *slog.Logger
}

func (l LogListener) OnPointsAwarded(event PointsAwarded) {
	l.Logger.Info("points awarded",
		slog.String("eventId", event.EventID),
		slog.String("challengeId", event.ChallengeID),
		slog.Int("points", event.Points),
		slog.Int("totalPoints", event.TotalPoints),
	)
}

func (l LogListener) OnRewardStatusChanged(event RewardStatusChanged) {
	l.Logger.Info("reward status changed",
		slog.String("eventId", event.EventID),
		slog.String("status", string(event.Status)),
		slog.Int("totalPoints", event.TotalPoints),
		slog.Int("userRank", event.UserRank),
	)
}
