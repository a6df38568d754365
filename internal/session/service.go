package session

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streamhub/rewards-service/internal/rewards"
)

type service struct {
	repo   Repository
	engine *rewards.Engine
	clock  func() time.Time
}

// NewService creates a session service backed by the given repository and engine.
func NewService(repo Repository, engine *rewards.Engine) Service {
	return &service{repo: repo, engine: engine, clock: time.Now}
}

func (s *service) ListChallenges(_ context.Context) ([]rewards.ChallengeDefinition, error) {
	return rewards.ChallengeDefinitions(), nil
}

func (s *service) GetOverview(ctx context.Context, userID string) (*OverviewResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var (
		overview OverviewResponse
		trivia   TriviaView
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
			overview = snapshotOverview(p)
			return nil
		})
	})

	g.Go(func() error {
		trivia = triviaView(rewards.CurrentTriviaQuestion(s.clock()))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview.Trivia = trivia
	return &overview, nil
}

func (s *service) CompleteChallenge(ctx context.Context, userID, challengeID string, points int) (*rewards.CompletionResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var result rewards.CompletionResult
	err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		var opErr error
		result, opErr = s.engine.CompleteChallenge(p, challengeID, points)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) TrackAction(ctx context.Context, userID string, kind rewards.ActionKind, contentID string) (*rewards.CompletionResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var result rewards.CompletionResult
	err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		var opErr error
		result, opErr = s.engine.TrackAction(p, kind, contentID)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ClaimReward(ctx context.Context, userID string) (*rewards.ClaimResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var result rewards.ClaimResult
	err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		result = s.engine.ClaimReward(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) EndPeriod(ctx context.Context, userID string) (*rewards.PeriodResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var result rewards.PeriodResult
	err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		result = s.engine.EndPeriod(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ResetProgress(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("missing user id")
	}

	return s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		s.engine.ResetPeriod(p)
		return nil
	})
}

func (s *service) RefreshWeekly(ctx context.Context, userID string) (*RefreshResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	var refreshed []string
	err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
		refreshed = s.engine.RefreshWeeklyChallenges(p, s.clock())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{Refreshed: refreshed}, nil
}

func (s *service) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.repo.UserIDs(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, userID := range ids {
		err := s.repo.Update(ctx, userID, func(p *rewards.UserProgress) error {
			total += len(s.engine.RefreshWeeklyChallenges(p, s.clock()))
			return nil
		})
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *service) CurrentTrivia(_ context.Context) (TriviaView, error) {
	return triviaView(rewards.CurrentTriviaQuestion(s.clock())), nil
}

func snapshotOverview(p *rewards.UserProgress) OverviewResponse {
	defs := rewards.ChallengeDefinitions()
	challenges := make([]ChallengeOverview, 0, len(defs))
	for _, def := range defs {
		entry := ChallengeOverview{ChallengeDefinition: def, Status: rewards.StatusAvailable}
		if state := p.State(def.ID); state != nil {
			entry.Status = state.Status
			entry.LastCompletedAt = state.LastCompletedAt
		}
		challenges = append(challenges, entry)
	}

	return OverviewResponse{
		TotalPoints:   p.TotalPoints,
		MonthlyGoal:   p.MonthlyGoal,
		RewardStatus:  p.RewardStatus,
		UserRank:      p.UserRank,
		PeekViewUsed:  p.PeekViewUsed,
		PeriodEndedAt: p.PeriodEndedAt,
		Challenges:    challenges,
	}
}

func triviaView(q rewards.TriviaQuestion) TriviaView {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return TriviaView{ID: q.ID, Question: q.Question, Options: options}
}
