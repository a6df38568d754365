package rewards

// Challenge ids referenced by action tracking and clients.
const (
	ChallengeStartNewShow   = "start-new-show"
	ChallengeWeeklyTrivia   = "weekly-trivia"
	ChallengeCompleteSeries = "complete-series"
	ChallengeAddToList      = "add-to-list"
	ChallengeTryPeekView    = "try-peek-view"
)

// challengeDefinitions is the canonical list of available challenges, in the
// order clients display them. Keep this stable because clients may store
// challenge IDs.
func challengeDefinitions() []ChallengeDefinition {
	return []ChallengeDefinition{
		{
			ID:          ChallengeStartNewShow,
			Title:       "Start a New Show",
			Description: "Finish Episode 1 of any show you haven't watched before",
			Points:      200,
			Category:    CategoryWatching,
		},
		{
			ID:          ChallengeWeeklyTrivia,
			Title:       "Answer Weekly Trivia",
			Description: "Test your knowledge with our weekly trivia question",
			Points:      150,
			Category:    CategoryTrivia,
			Repeatable:  true,
		},
		{
			ID:          ChallengeCompleteSeries,
			Title:       "Complete a Series",
			Description: "Watch 90% of episodes and finish the final episode of any series",
			Points:      300,
			Category:    CategoryWatching,
		},
		{
			ID:          ChallengeAddToList,
			Title:       "Add to My List",
			Description: "Add any title to your \"My List\" for easy access later",
			Points:      100,
			Category:    CategoryList,
		},
		{
			ID:          ChallengeTryPeekView,
			Title:       "Try Peek View",
			Description: "Preview content using the Peek View feature",
			Points:      250,
			Category:    CategoryPeek,
		},
	}
}

// ChallengeDefinitions returns the catalog. It returns a copy so callers
// cannot mutate the canonical list.
func ChallengeDefinitions() []ChallengeDefinition {
	defs := challengeDefinitions()
	out := make([]ChallengeDefinition, len(defs))
	copy(out, defs)
	return out
}

// DefinitionByID looks up a challenge definition by id.
func DefinitionByID(id string) (ChallengeDefinition, bool) {
	for _, def := range challengeDefinitions() {
		if def.ID == id {
			return def, true
		}
	}
	return ChallengeDefinition{}, false
}
