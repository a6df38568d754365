package rewards

import "time"

// ChallengeCategory identifies the kind of user behavior a challenge covers.
type ChallengeCategory string

const (
	CategoryTrivia   ChallengeCategory = "trivia"
	CategoryWatching ChallengeCategory = "watching"
	CategoryList     ChallengeCategory = "list"
	CategoryPeek     ChallengeCategory = "peek"
)

// ChallengeStatus is the lifecycle state of a single challenge.
type ChallengeStatus string

const (
	StatusLocked    ChallengeStatus = "locked"
	StatusAvailable ChallengeStatus = "available"
	StatusCompleted ChallengeStatus = "completed"
)

// ChallengeDefinition is a static challenge template.
// Keep IDs stable because clients may store them.
type ChallengeDefinition struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Points      int               `json:"points"`
	Category    ChallengeCategory `json:"category"`
	Repeatable  bool              `json:"repeatable"`
}

// ChallengeState is the per-user mutable state for a challenge.
type ChallengeState struct {
	Status ChallengeStatus `json:"status"`

	// LastCompletedAt is set only for repeatable challenges and drives the
	// weekly reset.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// RewardStatus is the aggregate outcome of the monthly point goal.
type RewardStatus string

const (
	RewardNone       RewardStatus = "none"
	RewardUnlocked   RewardStatus = "unlocked"
	RewardClaimed    RewardStatus = "claimed"
	RewardCapReached RewardStatus = "cap_reached"
	RewardShortfall  RewardStatus = "shortfall"
)

// Terminal reports whether the status can only change via a full reset.
func (s RewardStatus) Terminal() bool {
	switch s {
	case RewardClaimed, RewardCapReached, RewardShortfall:
		return true
	}
	return false
}

// ActionKind names a user behavior reported by the presentation layer.
type ActionKind string

const (
	ActionStartedShow     ActionKind = "started-show"
	ActionCompletedSeries ActionKind = "completed-series"
	ActionAddedToList     ActionKind = "added-to-list"
	ActionUsedPeekView    ActionKind = "used-peek-view"
)

// UserProgress is the per-session aggregate the engine mutates. One instance
// belongs to exactly one session; it is never shared across sessions.
type UserProgress struct {
	TotalPoints  int          `json:"total_points"`
	MonthlyGoal  int          `json:"monthly_goal"`
	RewardStatus RewardStatus `json:"reward_status"`

	// UserRank is assigned once when the goal is crossed; zero means
	// unassigned.
	UserRank int `json:"user_rank,omitempty"`

	Challenges map[string]*ChallengeState `json:"challenges"`

	// Dedup sets guarantee at-most-once awarding per content id.
	StartedShowIDs     map[string]struct{} `json:"-"`
	CompletedSeriesIDs map[string]struct{} `json:"-"`
	MyListContentIDs   map[string]struct{} `json:"-"`
	PeekViewUsed       bool                `json:"peek_view_used"`

	// PeriodEndedAt records when EndPeriod finalized the outcome.
	PeriodEndedAt *time.Time `json:"period_ended_at,omitempty"`
}

// State returns the state record for the given challenge id, or nil when the
// id is not part of the aggregate.
func (p *UserProgress) State(challengeID string) *ChallengeState {
	return p.Challenges[challengeID]
}
