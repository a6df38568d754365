package rewards

import (
	"testing"
	"time"
)

func TestCurrentTriviaQuestionDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	first := CurrentTriviaQuestion(now)
	second := CurrentTriviaQuestion(now)
	if first.ID != second.ID {
		t.Fatalf("same instant selected different questions: %s vs %s", first.ID, second.ID)
	}

	// Any instant within the same week maps to the same question.
	sameWeek := CurrentTriviaQuestion(now.Add(3 * time.Hour))
	if sameWeek.ID != first.ID {
		t.Fatalf("same week selected a different question: %s vs %s", sameWeek.ID, first.ID)
	}
}

func TestCurrentTriviaQuestionRotatesWeekly(t *testing.T) {
	bank := triviaBank()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < len(bank); i++ {
		q := CurrentTriviaQuestion(start.Add(time.Duration(i) * week))
		seen[q.ID] = true
	}
	if len(seen) != len(bank) {
		t.Fatalf("expected %d distinct questions over %d weeks, got %d", len(bank), len(bank), len(seen))
	}

	// The cycle wraps back around after the full bank.
	first := CurrentTriviaQuestion(start)
	wrapped := CurrentTriviaQuestion(start.Add(time.Duration(len(bank)) * week))
	if first.ID != wrapped.ID {
		t.Fatalf("expected rotation to wrap, got %s vs %s", first.ID, wrapped.ID)
	}
}

func TestTriviaBankShape(t *testing.T) {
	for _, q := range triviaBank() {
		if len(q.Options) < 2 {
			t.Fatalf("question %s has too few options", q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			t.Fatalf("question %s has an out-of-range answer index %d", q.ID, q.CorrectAnswer)
		}
	}
}
