package rewards

import "testing"

func TestRandomRankAssignerRange(t *testing.T) {
	assigner := NewRandomRankAssigner(42)
	for i := 0; i < 1000; i++ {
		rank := assigner.AssignRank()
		if rank < 1 || rank > rankDrawUpperBound {
			t.Fatalf("rank %d outside [1, %d]", rank, rankDrawUpperBound)
		}
	}
}

func TestRandomRankAssignerSeeded(t *testing.T) {
	a := NewRandomRankAssigner(7)
	b := NewRandomRankAssigner(7)
	for i := 0; i < 10; i++ {
		if got, want := a.AssignRank(), b.AssignRank(); got != want {
			t.Fatalf("same seed diverged at draw %d: %d vs %d", i, got, want)
		}
	}
}

func TestFixedRankAssigner(t *testing.T) {
	if rank := FixedRankAssigner(5).AssignRank(); rank != 5 {
		t.Fatalf("expected 5, got %d", rank)
	}
}
