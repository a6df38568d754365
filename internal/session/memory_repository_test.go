package session

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/streamhub/rewards-service/internal/rewards"
)

func newTestRepo() Repository {
	engine := rewards.NewEngine()
	return NewMemoryRepository(engine.NewProgress)
}

func TestMemoryRepositoryCreatesOnFirstUse(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	err := repo.Update(ctx, "user-1", func(p *rewards.UserProgress) error {
		if p.TotalPoints != 0 || p.RewardStatus != rewards.RewardNone {
			t.Fatalf("expected a fresh aggregate, got %+v", p)
		}
		p.TotalPoints = 100
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The same user sees the mutation; another user does not.
	_ = repo.Update(ctx, "user-1", func(p *rewards.UserProgress) error {
		if p.TotalPoints != 100 {
			t.Fatalf("mutation lost: %d", p.TotalPoints)
		}
		return nil
	})
	_ = repo.Update(ctx, "user-2", func(p *rewards.UserProgress) error {
		if p.TotalPoints != 0 {
			t.Fatalf("aggregates leaked across users: %d", p.TotalPoints)
		}
		return nil
	})
}

func TestMemoryRepositoryUpdatePropagatesError(t *testing.T) {
	repo := newTestRepo()
	wantErr := errors.New("boom")

	err := repo.Update(context.Background(), "user-1", func(*rewards.UserProgress) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped closure error, got %v", err)
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	if err := repo.Delete(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_ = repo.Update(ctx, "user-1", func(*rewards.UserProgress) error { return nil })
	if err := repo.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err := repo.UserIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty store after delete, got %v", ids)
	}
}

func TestMemoryRepositoryUserIDs(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_ = repo.Update(ctx, id, func(*rewards.UserProgress) error { return nil })
	}

	ids, err := repo.UserIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected id listing: %v", ids)
	}
}
