package rewards

import "time"

// TriviaQuestion is a single entry from the trivia bank. CorrectAnswer is an
// index into Options.
type TriviaQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// week is the cadence for trivia rotation and the repeatable-challenge reset.
const week = 7 * 24 * time.Hour

func triviaBank() []TriviaQuestion {
	return []TriviaQuestion{
		{
			ID:       "week1-2025",
			Question: "Which Star Trek series features Captain Christopher Pike as the main character?",
			Options: []string{
				"Star Trek: The Original Series",
				"Star Trek: Strange New Worlds",
				"Star Trek: Discovery",
				"Star Trek: The Next Generation",
			},
			CorrectAnswer: 1,
			Explanation:   "Star Trek: Strange New Worlds follows Captain Pike and his crew aboard the USS Enterprise.",
		},
		{
			ID:            "week2-2025",
			Question:      "In which year was the movie \"Interstellar\" released?",
			Options:       []string{"2013", "2014", "2015", "2016"},
			CorrectAnswer: 1,
			Explanation:   "Interstellar was released in 2014 and directed by Christopher Nolan.",
		},
		{
			ID:       "week3-2025",
			Question: "What is the main character's profession in the TV series \"Dexter\"?",
			Options: []string{
				"Police Detective",
				"Forensics Expert",
				"FBI Agent",
				"Crime Scene Photographer",
			},
			CorrectAnswer: 1,
			Explanation:   "Dexter Morgan works as a forensics expert specializing in blood spatter analysis.",
		},
	}
}

// CurrentTriviaQuestion selects this week's question from the bank. The
// selection is a pure function of the supplied time so tests can pin it.
func CurrentTriviaQuestion(now time.Time) TriviaQuestion {
	bank := triviaBank()
	weeks := now.UnixMilli() / week.Milliseconds()
	idx := int(((weeks % int64(len(bank))) + int64(len(bank))) % int64(len(bank)))
	return bank[idx]
}
