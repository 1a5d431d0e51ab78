package trend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"mocktest-service/internal/cache"
	"mocktest-service/internal/models"
)

const (
	// snapshotKey is the single cache entry holding the full ranking
	// snapshot.
	snapshotKey = "concept_trends:snapshot"
	snapshotTTL = 24 * time.Hour

	// Importance blends frequency with recency-weighted appearance:
	// recency decays 10% per year and contributes 30% of the score.
	frequencyWeight = 0.7
	recencyWeight   = 0.3
	yearlyDecay     = 0.9
)

// ConceptSource lists the concepts under analysis.
type ConceptSource interface {
	FindAll(ctx context.Context) ([]models.Concept, error)
}

// QuestionStats exposes the bank counts the analyzer derives trends
// from.
type QuestionStats interface {
	CountAll(ctx context.Context) (int64, error)
	CountByConcept(ctx context.Context, conceptID string) (int64, error)
	CountByConceptPerYear(ctx context.Context, conceptID string) (map[int]int, error)
}

// TrendStore persists one trend row per concept.
type TrendStore interface {
	Upsert(ctx context.Context, trend *models.ConceptTrend) error
	FindAll(ctx context.Context) ([]models.ConceptTrend, error)
}

// Snapshot is the cached ranking-plus-metadata payload.
type Snapshot struct {
	Rankings       []models.ConceptRanking `json:"rankings"`
	TotalQuestions int64                   `json:"total_questions"`
	ComputedAt     time.Time               `json:"computed_at"`
}

// Analyzer computes and serves per-concept importance scores. Cache
// failures are logged and worked around; storage failures propagate.
type Analyzer struct {
	concepts  ConceptSource
	questions QuestionStats
	trends    TrendStore
	cache     cache.Store
}

func NewAnalyzer(concepts ConceptSource, questions QuestionStats, trends TrendStore, cacheStore cache.Store) *Analyzer {
	return &Analyzer{
		concepts:  concepts,
		questions: questions,
		trends:    trends,
		cache:     cacheStore,
	}
}

// AnalyzeTrends recomputes and upserts a trend row for every concept,
// then drops the cached snapshot so the next ranking read is fresh.
// An empty question bank yields an empty result, not an error.
func (a *Analyzer) AnalyzeTrends(ctx context.Context) ([]models.ConceptTrend, error) {
	total, err := a.questions.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	concepts, err := a.concepts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}

	currentYear := time.Now().Year()
	trends := make([]models.ConceptTrend, 0, len(concepts))
	for _, concept := range concepts {
		count, err := a.questions.CountByConcept(ctx, concept.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count questions for concept %s: %w", concept.ID, err)
		}
		yearly, err := a.questions.CountByConceptPerYear(ctx, concept.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count yearly questions for concept %s: %w", concept.ID, err)
		}

		frequency := float64(count) / float64(total)
		trend := models.ConceptTrend{
			ConceptID:          concept.ID,
			Frequency:          frequency,
			Importance:         computeImportance(frequency, yearly, currentYear),
			YearlyDistribution: yearly,
			LastUpdated:        time.Now(),
		}
		if err := a.trends.Upsert(ctx, &trend); err != nil {
			return nil, fmt.Errorf("failed to upsert trend for concept %s: %w", concept.ID, err)
		}
		trends = append(trends, trend)
	}

	a.invalidateSnapshot(ctx)
	return trends, nil
}

// GetConceptRanking serves the ranking snapshot, read-through cached
// with a 24h expiry.
func (a *Analyzer) GetConceptRanking(ctx context.Context) ([]models.ConceptRanking, error) {
	snap, err := a.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Rankings, nil
}

// GetSnapshot returns the ranking snapshot with its metadata. A cache
// hit short-circuits storage entirely; any cache error degrades to a
// direct recompute.
func (a *Analyzer) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	if a.cache != nil {
		data, err := a.cache.Get(ctx, snapshotKey)
		if err == nil {
			var snap Snapshot
			if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
				return &snap, nil
			}
			log.Printf("trend cache: discarding unreadable snapshot")
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("trend cache read failed, falling back to storage: %v", err)
		}
	}

	snap, err := a.computeSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := a.cache.SetWithExpiry(ctx, snapshotKey, data, snapshotTTL); err != nil {
				log.Printf("trend cache write failed: %v", err)
			}
		}
	}
	return snap, nil
}

func (a *Analyzer) computeSnapshot(ctx context.Context) (*Snapshot, error) {
	trends, err := a.trends.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trends: %w", err)
	}

	concepts, err := a.concepts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	names := make(map[string]string, len(concepts))
	for _, c := range concepts {
		names[c.ID] = c.Name
	}

	total, err := a.questions.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	rankings := make([]models.ConceptRanking, 0, len(trends))
	for _, t := range trends {
		rankings = append(rankings, models.ConceptRanking{
			ConceptID:          t.ConceptID,
			ConceptName:        names[t.ConceptID],
			Frequency:          t.Frequency,
			Importance:         t.Importance,
			YearlyDistribution: t.YearlyDistribution,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Frequency != rankings[j].Frequency {
			return rankings[i].Frequency > rankings[j].Frequency
		}
		return rankings[i].Importance > rankings[j].Importance
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return &Snapshot{
		Rankings:       rankings,
		TotalQuestions: total,
		ComputedAt:     time.Now(),
	}, nil
}

// invalidateSnapshot deletes rather than rewrites the cache entry so
// the next read recomputes from storage. Failures only cost latency.
func (a *Analyzer) invalidateSnapshot(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, snapshotKey); err != nil {
		log.Printf("trend cache invalidation failed: %v", err)
	}
}

// computeImportance blends frequency with the concept's normalized
// recency bonus. Concepts with no dated occurrences score on frequency
// alone.
func computeImportance(frequency float64, yearly map[int]int, currentYear int) float64 {
	totalDated := 0
	recencyBonus := 0.0
	for year, count := range yearly {
		totalDated += count
		recencyBonus += float64(count) * math.Pow(yearlyDecay, float64(currentYear-year))
	}
	if totalDated == 0 {
		return frequency
	}
	normalizedRecency := recencyBonus / float64(totalDated)
	return frequencyWeight*frequency + recencyWeight*normalizedRecency
}
