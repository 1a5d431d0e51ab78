package selection

import (
	"context"
	"fmt"
	"math"
	"sort"

	"mocktest-service/internal/models"
)

// QuestionSampler is the storage surface the selector draws from. The
// mongo question repository satisfies it; tests use an in-memory bank.
// Implementations return candidates in store-determined (effectively
// random) order, never including an excluded ID.
type QuestionSampler interface {
	SampleQuestions(ctx context.Context, conceptID, difficulty string, excludeIDs []string, limit int) ([]models.Question, error)
}

// Selector assembles question sets that honor a difficulty mix and the
// concept importance ranking.
type Selector struct {
	sampler QuestionSampler
}

func NewSelector(sampler QuestionSampler) *Selector {
	return &Selector{sampler: sampler}
}

// ValidateDistribution rejects distributions with negative fractions or
// a sum outside 10% of 1.0.
func ValidateDistribution(dist models.DifficultyDistribution) error {
	sum := dist.Sum()
	if dist.Easy < 0 || dist.Medium < 0 || dist.Hard < 0 || sum < 0.9 || sum > 1.1 {
		return &InvalidDifficultyDistributionError{Sum: sum}
	}
	return nil
}

// TargetCounts converts difficulty fractions into per-level counts that
// sum to totalCount exactly. Rounding residue, positive or negative,
// lands on the medium bucket.
func TargetCounts(totalCount int, dist models.DifficultyDistribution) map[string]int {
	targets := make(map[string]int, len(models.DifficultyLevels))
	sum := 0
	for _, level := range models.DifficultyLevels {
		n := int(math.Round(float64(totalCount) * dist.Fraction(level)))
		targets[level] = n
		sum += n
	}
	targets[models.DifficultyMedium] += totalCount - sum
	return targets
}

// candidate ties a drawn question to its concept's importance for
// pooled ordering.
type candidate struct {
	question   models.Question
	importance float64
}

// SelectByTrend draws totalCount questions, biased toward important
// concepts. With a distribution it fills per-difficulty buckets in
// fixed order; without one it follows the largest-remainder concept
// allocation. Shortfall in either mode is backfilled by importance;
// if the bank still cannot supply totalCount the whole selection fails
// and nothing is persisted.
func (s *Selector) SelectByTrend(
	ctx context.Context,
	totalCount int,
	rankings []models.ConceptRanking,
	dist *models.DifficultyDistribution,
) ([]models.Question, error) {
	if len(rankings) == 0 {
		return nil, ErrNoTrendData
	}

	used := make(map[string]bool)
	var selected []models.Question
	var err error

	if dist != nil {
		if err := ValidateDistribution(*dist); err != nil {
			return nil, err
		}
		selected, err = s.selectWithDistribution(ctx, totalCount, rankings, *dist, used)
	} else {
		selected, err = s.selectByAllocation(ctx, totalCount, rankings, used)
	}
	if err != nil {
		return nil, err
	}

	if len(selected) < totalCount {
		extra, err := s.FillShortfall(ctx, totalCount-len(selected), rankings, used)
		if err != nil {
			return nil, err
		}
		selected = append(selected, extra...)
	}

	if len(selected) < totalCount {
		return nil, &InsufficientQuestionBankError{Requested: totalCount, Available: len(selected)}
	}
	return selected, nil
}

// selectWithDistribution fills the easy, medium and hard buckets in
// that order. Candidates from every relevant concept are pooled per
// bucket and taken by importance; equal-importance ordering is whatever
// random order the store returned.
func (s *Selector) selectWithDistribution(
	ctx context.Context,
	totalCount int,
	rankings []models.ConceptRanking,
	dist models.DifficultyDistribution,
	used map[string]bool,
) ([]models.Question, error) {
	targets := TargetCounts(totalCount, dist)

	var selected []models.Question
	for _, level := range models.DifficultyLevels {
		target := targets[level]
		if target <= 0 {
			continue
		}

		pool := make([]candidate, 0, target*len(rankings))
		for _, ranking := range rankings {
			questions, err := s.sampler.SampleQuestions(ctx, ranking.ConceptID, level, usedIDs(used), target)
			if err != nil {
				return nil, fmt.Errorf("failed to sample %s questions for concept %s: %w", level, ranking.ConceptID, err)
			}
			for _, q := range questions {
				pool = append(pool, candidate{question: q, importance: ranking.Importance})
			}
		}

		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].importance > pool[j].importance
		})
		if len(pool) > target {
			pool = pool[:target]
		}
		for _, c := range pool {
			selected = append(selected, c.question)
			used[c.question.ID] = true
		}
	}
	return selected, nil
}

// selectByAllocation draws up to each concept's apportioned count,
// ignoring difficulty.
func (s *Selector) selectByAllocation(
	ctx context.Context,
	totalCount int,
	rankings []models.ConceptRanking,
	used map[string]bool,
) ([]models.Question, error) {
	allocation := DistributeQuestionsByConcept(rankings, totalCount)

	var selected []models.Question
	for _, ranking := range rankings {
		count := allocation[ranking.ConceptID]
		if count <= 0 {
			continue
		}
		questions, err := s.sampler.SampleQuestions(ctx, ranking.ConceptID, "", usedIDs(used), count)
		if err != nil {
			return nil, fmt.Errorf("failed to sample questions for concept %s: %w", ranking.ConceptID, err)
		}
		for _, q := range questions {
			selected = append(selected, q)
			used[q.ID] = true
		}
	}
	return selected, nil
}

// FillShortfall tops up a deficit from whatever the bank still has,
// walking concepts by importance descending and never reusing an
// already-selected question. Best effort: the result may be shorter
// than the deficit when the bank is exhausted.
func (s *Selector) FillShortfall(
	ctx context.Context,
	deficit int,
	rankings []models.ConceptRanking,
	used map[string]bool,
) ([]models.Question, error) {
	if deficit <= 0 {
		return nil, nil
	}

	byImportance := make([]models.ConceptRanking, len(rankings))
	copy(byImportance, rankings)
	sort.SliceStable(byImportance, func(i, j int) bool {
		return byImportance[i].Importance > byImportance[j].Importance
	})

	var extra []models.Question
	remaining := deficit
	for _, ranking := range byImportance {
		if remaining <= 0 {
			break
		}
		questions, err := s.sampler.SampleQuestions(ctx, ranking.ConceptID, "", usedIDs(used), remaining)
		if err != nil {
			return nil, fmt.Errorf("failed to backfill from concept %s: %w", ranking.ConceptID, err)
		}
		for _, q := range questions {
			if remaining <= 0 {
				break
			}
			extra = append(extra, q)
			used[q.ID] = true
			remaining--
		}
	}
	return extra, nil
}

func usedIDs(used map[string]bool) []string {
	if len(used) == 0 {
		return nil
	}
	ids := make([]string, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	return ids
}
