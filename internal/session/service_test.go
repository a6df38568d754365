package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/streamhub/rewards-service/internal/rewards"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

// newTestService wires a real engine and memory repository with pinned time
// and a deterministic rank. Tests advance time through the returned pointer.
func newTestService() (Service, *time.Time) {
	now := testNow
	clock := func() time.Time { return now }

	engine := rewards.NewEngine(
		rewards.WithClock(clock),
		rewards.WithRankAssigner(rewards.FixedRankAssigner(5)),
	)
	repo := NewMemoryRepository(engine.NewProgress)

	svc := &service{repo: repo, engine: engine, clock: clock}
	return svc, &now
}

func TestServiceGetOverviewFreshUser(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetOverview(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalPoints != 0 || resp.RewardStatus != rewards.RewardNone {
		t.Fatalf("unexpected fresh overview: %+v", resp)
	}
	if len(resp.Challenges) != 5 {
		t.Fatalf("expected 5 challenges, got %d", len(resp.Challenges))
	}
	for _, c := range resp.Challenges {
		if c.Status != rewards.StatusAvailable {
			t.Fatalf("challenge %s should start available", c.ID)
		}
	}
	if resp.Trivia.ID == "" || len(resp.Trivia.Options) == 0 {
		t.Fatalf("overview missing the trivia question: %+v", resp.Trivia)
	}
}

func TestServiceCompleteChallengeUpdatesOverview(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	result, err := svc.CompleteChallenge(ctx, "user-1", rewards.ChallengeAddToList, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Applied || result.TotalPoints != 100 {
		t.Fatalf("unexpected result: %+v", result)
	}

	resp, err := svc.GetOverview(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalPoints != 100 {
		t.Fatalf("expected 100 points in overview, got %d", resp.TotalPoints)
	}
}

func TestServiceUsersAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.TrackAction(ctx, "user-1", rewards.ActionUsedPeekView, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := svc.GetOverview(ctx, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.TotalPoints != 0 || other.PeekViewUsed {
		t.Fatalf("state leaked between users: %+v", other)
	}
}

func TestServiceRequiresUserID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.GetOverview(ctx, ""); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if _, err := svc.ClaimReward(ctx, ""); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if err := svc.ResetProgress(ctx, ""); err == nil {
		t.Fatalf("expected error for missing user id")
	}
}

func TestServicePropagatesEngineErrors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CompleteChallenge(context.Background(), "user-1", "no-such-challenge", 10)
	if !errors.Is(err, rewards.ErrUnknownChallenge) {
		t.Fatalf("expected ErrUnknownChallenge, got %v", err)
	}
}

func TestServiceRefreshAll(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	// Two users complete this week's trivia; a third never touched it.
	for _, userID := range []string{"u1", "u2"} {
		if _, err := svc.CompleteChallenge(ctx, userID, rewards.ChallengeWeeklyTrivia, 150); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := svc.GetOverview(ctx, "u3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*now = testNow.Add(8 * 24 * time.Hour)

	count, err := svc.RefreshAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 refreshed challenges, got %d", count)
	}

	resp, err := svc.GetOverview(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range resp.Challenges {
		if c.ID == rewards.ChallengeWeeklyTrivia && c.Status != rewards.StatusAvailable {
			t.Fatalf("trivia not reopened: %s", c.Status)
		}
	}
}

func TestServiceResetProgress(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.TrackAction(ctx, "user-1", rewards.ActionAddedToList, "title-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ResetProgress(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.GetOverview(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalPoints != 0 {
		t.Fatalf("expected reset aggregate, got %d points", resp.TotalPoints)
	}

	// The dedup set was cleared too, so the same title awards again.
	result, err := svc.TrackAction(ctx, "user-1", rewards.ActionAddedToList, "title-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Applied || result.TotalPoints != 100 {
		t.Fatalf("expected award after reset, got %+v", result)
	}
}

func TestServiceCurrentTriviaHidesAnswer(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.CurrentTrivia(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID == "" || view.Question == "" || len(view.Options) < 2 {
		t.Fatalf("unexpected trivia view: %+v", view)
	}
}
