package selection

import (
	"math/rand"

	"mocktest-service/internal/models"
)

// EnsureValidSources rejects a selection containing questions with an
// empty or whitespace-only source citation. The storage layer should
// make this impossible; it is re-checked before a test is persisted.
func EnsureValidSources(questions []models.Question) error {
	missing := 0
	for i := range questions {
		if !questions[i].HasSource() {
			missing++
		}
	}
	if missing > 0 {
		return &MissingSourceError{Count: missing}
	}
	return nil
}

// Shuffle permutes the questions in place (Fisher-Yates).
func Shuffle(questions []models.Question) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

// BalanceQuestionDifficulty rebalances an in-memory question list
// toward the given difficulty mix without touching storage. Unlike the
// bank-backed selector it never fails on shortfall: under-supplied
// buckets are backfilled from leftover input and the result may be
// shorter than the input. Questions with an unrecognized difficulty are
// dropped.
func BalanceQuestionDifficulty(questions []models.Question, dist models.DifficultyDistribution) []models.Question {
	targets := TargetCounts(len(questions), dist)

	groups := make(map[string][]models.Question, len(models.DifficultyLevels))
	for _, q := range questions {
		if models.ValidDifficulty(q.Difficulty) {
			groups[q.Difficulty] = append(groups[q.Difficulty], q)
		}
	}

	var balanced []models.Question
	var leftover []models.Question
	for _, level := range models.DifficultyLevels {
		group := groups[level]
		Shuffle(group)
		take := targets[level]
		if take > len(group) {
			take = len(group)
		}
		balanced = append(balanced, group[:take]...)
		leftover = append(leftover, group[take:]...)
	}

	if deficit := len(questions) - len(balanced); deficit > 0 {
		Shuffle(leftover)
		if deficit > len(leftover) {
			deficit = len(leftover)
		}
		balanced = append(balanced, leftover[:deficit]...)
	}

	Shuffle(balanced)
	return balanced
}
