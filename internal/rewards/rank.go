package rewards

import "math/rand"

// RankAssigner decides the user's position against the reward capacity once
// the monthly goal is crossed. Production would query an authoritative
// counter; the demo policy draws a pseudo-random rank.
type RankAssigner interface {
	AssignRank() int
}

// rankDrawUpperBound is the demo draw range. It deliberately exceeds the
// reward capacity so cap_reached outcomes are reachable.
const rankDrawUpperBound = 1200

type randomRankAssigner struct {
	rnd *rand.Rand
}

// NewRandomRankAssigner returns the demo rank policy: a seeded pseudo-random
// draw in [1, 1200].
func NewRandomRankAssigner(seed int64) RankAssigner {
	return &randomRankAssigner{rnd: rand.New(rand.NewSource(seed))}
}

func (a *randomRankAssigner) AssignRank() int {
	return a.rnd.Intn(rankDrawUpperBound) + 1
}

// FixedRankAssigner always returns the same rank. Intended for tests and for
// wiring a precomputed rank.
type FixedRankAssigner int

func (a FixedRankAssigner) AssignRank() int {
	return int(a)
}
