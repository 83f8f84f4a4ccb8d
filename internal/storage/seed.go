package storage

import "github.com/tithmeassambo-coder/QCM/internal/game"

var seedQuestions = []game.Question{
	{
		Subject: "ភូមិវិទ្យា",
		Text:    "What is the capital of Cambodia?",
		Options: []string{"Siem Reap", "Phnom Penh", "Battambang", "Kampot"},
		Correct: 1,
	},
	{
		Subject: "ភូមិវិទ្យា",
		Text:    "Which river flows through Phnom Penh?",
		Options: []string{"Mekong", "Chao Phraya", "Red River", "Irrawaddy"},
		Correct: 0,
	},
	{
		Subject: "ភូមិវិទ្យា",
		Text:    "What is the largest freshwater lake in Southeast Asia?",
		Options: []string{"Inle Lake", "Lake Toba", "Tonlé Sap", "Songkhla Lake"},
		Correct: 2,
	},
	{
		Subject: "គណិតវិទ្យា",
		Text:    "What is 2 + 2?",
		Options: []string{"3", "4", "5", "6"},
		Correct: 1,
	},
	{
		Subject: "គណិតវិទ្យា",
		Text:    "What is 7 × 8?",
		Options: []string{"54", "56", "58", "64"},
		Correct: 1,
	},
	{
		Subject: "គណិតវិទ្យា",
		Text:    "What is the square root of 81?",
		Options: []string{"7", "8", "9", "10"},
		Correct: 2,
	},
}

// SeedQuestions returns a fresh copy of the built-in question set.
func SeedQuestions() []game.Question {
	out := make([]game.Question, len(seedQuestions))
	for i, q := range seedQuestions {
		out[i] = q.Clone()
		out[i].IsActive = game.Bool(true)
	}
	return out
}
