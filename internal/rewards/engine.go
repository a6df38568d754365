package rewards

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Default tunables for the monthly reward period.
const (
	DefaultMonthlyGoal    = 1000
	DefaultRewardCapacity = 1000
)

// Engine applies the challenge and reward transition rules to a UserProgress
// aggregate. The engine itself holds no per-user state; every operation takes
// the aggregate it mutates, and each operation either fully applies or is a
// no-op. Callers must serialize calls against a single aggregate.
type Engine struct {
	goal     int
	capacity int
	clock    func() time.Time
	rank     RankAssigner
	emitter  emitter
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMonthlyGoal overrides the point goal for the period.
func WithMonthlyGoal(goal int) Option {
	return func(e *Engine) { e.goal = goal }
}

// WithRewardCapacity overrides how many goal-reaching users can unlock the reward.
func WithRewardCapacity(capacity int) Option {
	return func(e *Engine) { e.capacity = capacity }
}

// WithClock overrides the wall-clock source. Tests use this to pin time.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithRankAssigner overrides the rank-assignment policy.
func WithRankAssigner(rank RankAssigner) Option {
	return func(e *Engine) { e.rank = rank }
}

// WithListener subscribes a signal listener.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.emitter.listeners = append(e.emitter.listeners, l) }
}

// NewEngine returns an engine with the default goal, capacity, system clock
// and the demo random rank policy.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		goal:     DefaultMonthlyGoal,
		capacity: DefaultRewardCapacity,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rank == nil {
		e.rank = NewRandomRankAssigner(e.clock().UnixNano())
	}
	return e
}

// NewProgress builds a fresh aggregate from the catalog: every challenge
// available, all dedup sets empty, zero points, no reward outcome.
func (e *Engine) NewProgress() *UserProgress {
	states := make(map[string]*ChallengeState)
	for _, def := range challengeDefinitions() {
		states[def.ID] = &ChallengeState{Status: StatusAvailable}
	}
	return &UserProgress{
		MonthlyGoal:        e.goal,
		RewardStatus:       RewardNone,
		Challenges:         states,
		StartedShowIDs:     make(map[string]struct{}),
		CompletedSeriesIDs: make(map[string]struct{}),
		MyListContentIDs:   make(map[string]struct{}),
	}
}

// CompletionResult reports the outcome of CompleteChallenge or TrackAction.
type CompletionResult struct {
	ChallengeID   string       `json:"challenge_id,omitempty"`
	Applied       bool         `json:"applied"`
	PointsAwarded int          `json:"points_awarded"`
	TotalPoints   int          `json:"total_points"`
	RewardStatus  RewardStatus `json:"reward_status"`
	UserRank      int          `json:"user_rank,omitempty"`
}

// CompleteChallenge marks the referenced challenge completed and adds the
// caller-supplied points. Points are caller-supplied rather than re-derived
// from the catalog because trivia awards 0 on a wrong answer; a zero award
// still completes the challenge for the current cycle.
//
// If the challenge is not currently available the call is a no-op, which
// absorbs duplicate UI events. An id missing from the catalog is a caller bug
// and returns ErrUnknownChallenge.
func (e *Engine) CompleteChallenge(p *UserProgress, challengeID string, points int) (CompletionResult, error) {
	def, ok := DefinitionByID(challengeID)
	if !ok {
		return CompletionResult{}, fmt.Errorf("%w: %s", ErrUnknownChallenge, challengeID)
	}
	if points < 0 {
		return CompletionResult{}, fmt.Errorf("%w: %d", ErrNegativePoints, points)
	}

	state := p.State(challengeID)
	if state == nil || state.Status != StatusAvailable {
		return e.completionResult(p, challengeID, false, 0), nil
	}

	state.Status = StatusCompleted
	p.TotalPoints += points
	if def.Repeatable {
		now := e.clock()
		state.LastCompletedAt = &now
	}

	if points > 0 {
		e.emitter.pointsAwarded(PointsAwarded{
			EventID:     uuid.NewString(),
			ChallengeID: challengeID,
			Points:      points,
			TotalPoints: p.TotalPoints,
			EmittedAt:   e.clock(),
		})
	}

	e.evaluateReward(p)

	return e.completionResult(p, challengeID, true, points), nil
}

// TrackAction records a reported user behavior and completes the matching
// challenge when it is still available. The dedup set is checked before the
// challenge status so repeated actions after completion neither re-award
// points nor re-emit signals.
func (e *Engine) TrackAction(p *UserProgress, kind ActionKind, contentID string) (CompletionResult, error) {
	var (
		challengeID string
		recorded    bool
	)

	switch kind {
	case ActionStartedShow:
		if contentID == "" {
			return CompletionResult{}, fmt.Errorf("%w for action %s", ErrMissingContentID, kind)
		}
		challengeID = ChallengeStartNewShow
		if _, seen := p.StartedShowIDs[contentID]; !seen {
			p.StartedShowIDs[contentID] = struct{}{}
			recorded = true
		}
	case ActionCompletedSeries:
		if contentID == "" {
			return CompletionResult{}, fmt.Errorf("%w for action %s", ErrMissingContentID, kind)
		}
		challengeID = ChallengeCompleteSeries
		if _, seen := p.CompletedSeriesIDs[contentID]; !seen {
			p.CompletedSeriesIDs[contentID] = struct{}{}
			recorded = true
		}
	case ActionAddedToList:
		if contentID == "" {
			return CompletionResult{}, fmt.Errorf("%w for action %s", ErrMissingContentID, kind)
		}
		challengeID = ChallengeAddToList
		if _, seen := p.MyListContentIDs[contentID]; !seen {
			p.MyListContentIDs[contentID] = struct{}{}
			recorded = true
		}
	case ActionUsedPeekView:
		challengeID = ChallengeTryPeekView
		if !p.PeekViewUsed {
			p.PeekViewUsed = true
			recorded = true
		}
	default:
		return CompletionResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, kind)
	}

	if !recorded {
		return e.completionResult(p, challengeID, false, 0), nil
	}

	def, _ := DefinitionByID(challengeID)
	return e.CompleteChallenge(p, challengeID, def.Points)
}

// ClaimResult reports the outcome of ClaimReward.
type ClaimResult struct {
	Claimed      bool         `json:"claimed"`
	RewardStatus RewardStatus `json:"reward_status"`
	TotalPoints  int          `json:"total_points"`
	UserRank     int          `json:"user_rank,omitempty"`
}

// ClaimReward moves an unlocked reward to claimed. In any other state the
// call is a no-op and Claimed is false; claiming twice leaves the status
// claimed.
func (e *Engine) ClaimReward(p *UserProgress) ClaimResult {
	if p.RewardStatus != RewardUnlocked {
		return ClaimResult{Claimed: false, RewardStatus: p.RewardStatus, TotalPoints: p.TotalPoints, UserRank: p.UserRank}
	}

	p.RewardStatus = RewardClaimed
	e.emitRewardStatus(p)

	return ClaimResult{Claimed: true, RewardStatus: p.RewardStatus, TotalPoints: p.TotalPoints, UserRank: p.UserRank}
}

// PeriodResult reports the outcome of EndPeriod.
type PeriodResult struct {
	Applied      bool         `json:"applied"`
	RewardStatus RewardStatus `json:"reward_status"`
	TotalPoints  int          `json:"total_points"`
	UserRank     int          `json:"user_rank,omitempty"`
}

// EndPeriod finalizes the monthly outcome. With the goal reached it assigns a
// rank and unlocks (or reports the cap); otherwise the outcome is shortfall.
// Once the status left none, ending the period again is a no-op.
func (e *Engine) EndPeriod(p *UserProgress) PeriodResult {
	if p.RewardStatus != RewardNone {
		return PeriodResult{Applied: false, RewardStatus: p.RewardStatus, TotalPoints: p.TotalPoints, UserRank: p.UserRank}
	}

	now := e.clock()
	p.PeriodEndedAt = &now

	if p.TotalPoints >= p.MonthlyGoal {
		e.assignRank(p)
	} else {
		p.RewardStatus = RewardShortfall
	}
	e.emitRewardStatus(p)

	return PeriodResult{Applied: true, RewardStatus: p.RewardStatus, TotalPoints: p.TotalPoints, UserRank: p.UserRank}
}

// ResetPeriod rebuilds the aggregate in place to its initial state. Partial
// resets are forbidden: statuses, dedup sets, rank and outcome all go back to
// their session-start values.
func (e *Engine) ResetPeriod(p *UserProgress) {
	*p = *e.NewProgress()
}

// RefreshWeeklyChallenges makes repeatable challenges available again once a
// full week elapsed since their last completion. The tick is caller-driven
// and idempotent. A clock earlier than the completion stamp counts as zero
// elapsed weeks so skew never regresses a challenge.
func (e *Engine) RefreshWeeklyChallenges(p *UserProgress, now time.Time) []string {
	var refreshed []string
	for _, def := range challengeDefinitions() {
		if !def.Repeatable {
			continue
		}
		state := p.State(def.ID)
		if state == nil || state.Status != StatusCompleted || state.LastCompletedAt == nil {
			continue
		}
		elapsed := now.Sub(*state.LastCompletedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed/week >= 1 {
			state.Status = StatusAvailable
			refreshed = append(refreshed, def.ID)
		}
	}
	return refreshed
}

// evaluateReward applies the goal-crossing rule after a point-changing
// mutation. It fires at most once per period: terminal and unlocked states
// are left untouched.
func (e *Engine) evaluateReward(p *UserProgress) {
	if p.RewardStatus != RewardNone || p.TotalPoints < p.MonthlyGoal {
		return
	}
	e.assignRank(p)
	e.emitRewardStatus(p)
}

func (e *Engine) assignRank(p *UserProgress) {
	p.UserRank = e.rank.AssignRank()
	if p.UserRank <= e.capacity {
		p.RewardStatus = RewardUnlocked
	} else {
		p.RewardStatus = RewardCapReached
	}
}

func (e *Engine) emitRewardStatus(p *UserProgress) {
	e.emitter.rewardStatusChanged(RewardStatusChanged{
		EventID:     uuid.NewString(),
		Status:      p.RewardStatus,
		TotalPoints: p.TotalPoints,
		UserRank:    p.UserRank,
		EmittedAt:   e.clock(),
	})
}

func (e *Engine) completionResult(p *UserProgress, challengeID string, applied bool, points int) CompletionResult {
	return CompletionResult{
		ChallengeID:   challengeID,
		Applied:       applied,
		PointsAwarded: points,
		TotalPoints:   p.TotalPoints,
		RewardStatus:  p.RewardStatus,
		UserRank:      p.UserRank,
	}
}
