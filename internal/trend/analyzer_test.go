package trend

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"mocktest-service/internal/cache"
	"mocktest-service/internal/models"
)

type fakeConcepts struct {
	concepts []models.Concept
}

func (f *fakeConcepts) FindAll(context.Context) ([]models.Concept, error) {
	return f.concepts, nil
}

type fakeStats struct {
	total      int64
	perConcept map[string]int64
	perYear    map[string]map[int]int
	countCalls int
}

func (f *fakeStats) CountAll(context.Context) (int64, error) {
	f.countCalls++
	return f.total, nil
}

func (f *fakeStats) CountByConcept(_ context.Context, conceptID string) (int64, error) {
	return f.perConcept[conceptID], nil
}

func (f *fakeStats) CountByConceptPerYear(_ context.Context, conceptID string) (map[int]int, error) {
	return f.perYear[conceptID], nil
}

type fakeTrends struct {
	rows map[string]models.ConceptTrend
}

func newFakeTrends() *fakeTrends {
	return &fakeTrends{rows: make(map[string]models.ConceptTrend)}
}

func (f *fakeTrends) Upsert(_ context.Context, trend *models.ConceptTrend) error {
	f.rows[trend.ConceptID] = *trend
	return nil
}

func (f *fakeTrends) FindAll(context.Context) ([]models.ConceptTrend, error) {
	var out []models.ConceptTrend
	for _, t := range f.rows {
		out = append(out, t)
	}
	return out, nil
}

// memoryCache is an in-memory stand-in for the redis store.
type memoryCache struct {
	data map[string][]byte
	sets int
	dels int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return val, nil
}

func (m *memoryCache) SetWithExpiry(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.dels++
	delete(m.data, key)
	return nil
}

// brokenCache fails every operation, to exercise the fail-open path.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) SetWithExpiry(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func TestComputeImportance(t *testing.T) {
	currentYear := 2026

	testCases := []struct {
		name      string
		frequency float64
		yearly    map[int]int
		expected  float64
	}{
		{
			"no dated occurrences falls back to frequency",
			0.25,
			nil,
			0.25,
		},
		{
			"all questions this year get the full recency weight",
			0.5,
			map[int]int{2026: 4},
			0.7*0.5 + 0.3*1.0,
		},
		{
			"one year old decays by 10 percent",
			0.5,
			map[int]int{2025: 4},
			0.7*0.5 + 0.3*0.9,
		},
		{
			"mixed years weight by count",
			0.4,
			map[int]int{2026: 1, 2024: 3},
			// bonus = 1*1.0 + 3*0.81 = 3.43; normalized over 4 dated
			0.7*0.4 + 0.3*(3.43/4.0),
		},
		{
			"old spikes fade gradually",
			0.2,
			map[int]int{2016: 10},
			0.7*0.2 + 0.3*math.Pow(0.9, 10),
		},
	}

	epsilon := 1e-9
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeImportance(tc.frequency, tc.yearly, currentYear)
			if math.Abs(got-tc.expected) > epsilon {
				t.Errorf("Expected importance %.6f, got %.6f", tc.expected, got)
			}
		})
	}
}

func newTestAnalyzer(cacheStore cache.Store) (*Analyzer, *fakeStats, *fakeTrends) {
	concepts := &fakeConcepts{concepts: []models.Concept{
		{ID: "mech", Name: "Mechanics"},
		{ID: "thermo", Name: "Thermodynamics"},
		{ID: "optics", Name: "Optics"},
	}}
	stats := &fakeStats{
		total:      10,
		perConcept: map[string]int64{"mech": 5, "thermo": 3, "optics": 2},
		perYear: map[string]map[int]int{
			"mech":   {time.Now().Year(): 5},
			"thermo": {time.Now().Year() - 1: 3},
		},
	}
	trends := newFakeTrends()
	return NewAnalyzer(concepts, stats, trends, cacheStore), stats, trends
}

func TestAnalyzeTrendsUpsertsEveryConcept(t *testing.T) {
	analyzer, _, trends := newTestAnalyzer(newMemoryCache())

	result, err := analyzer.AnalyzeTrends(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Expected 3 trends, got %d", len(result))
	}
	if len(trends.rows) != 3 {
		t.Fatalf("Expected 3 stored rows, got %d", len(trends.rows))
	}

	mech := trends.rows["mech"]
	if math.Abs(mech.Frequency-0.5) > 1e-9 {
		t.Errorf("Expected mech frequency 0.5, got %f", mech.Frequency)
	}
	// all mech occurrences are current-year: importance = 0.7*0.5 + 0.3
	if math.Abs(mech.Importance-0.65) > 1e-9 {
		t.Errorf("Expected mech importance 0.65, got %f", mech.Importance)
	}

	// optics has no dated occurrences: importance equals frequency
	optics := trends.rows["optics"]
	if math.Abs(optics.Importance-0.2) > 1e-9 {
		t.Errorf("Expected optics importance 0.2, got %f", optics.Importance)
	}
}

func TestAnalyzeTrendsRerunOverwrites(t *testing.T) {
	analyzer, stats, trends := newTestAnalyzer(newMemoryCache())

	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats.total = 20
	stats.perConcept["mech"] = 10
	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(trends.rows) != 3 {
		t.Fatalf("Expected one row per concept after rerun, got %d", len(trends.rows))
	}
	if math.Abs(trends.rows["thermo"].Frequency-0.15) > 1e-9 {
		t.Errorf("Expected thermo frequency refreshed to 0.15, got %f", trends.rows["thermo"].Frequency)
	}
}

func TestAnalyzeTrendsEmptyBank(t *testing.T) {
	analyzer := NewAnalyzer(
		&fakeConcepts{concepts: []models.Concept{{ID: "mech", Name: "Mechanics"}}},
		&fakeStats{total: 0},
		newFakeTrends(),
		newMemoryCache(),
	)

	result, err := analyzer.AnalyzeTrends(context.Background())
	if err != nil {
		t.Fatalf("Expected empty result, got error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected no trends for an empty bank, got %d", len(result))
	}
}

func TestGetConceptRankingOrderAndRanks(t *testing.T) {
	analyzer, _, _ := newTestAnalyzer(newMemoryCache())
	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rankings, err := analyzer.GetConceptRanking(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rankings) != 3 {
		t.Fatalf("Expected 3 rankings, got %d", len(rankings))
	}

	expectedOrder := []string{"mech", "thermo", "optics"}
	for i, want := range expectedOrder {
		if rankings[i].ConceptID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, rankings[i].ConceptID)
		}
		if rankings[i].Rank != i+1 {
			t.Errorf("Position %d: expected rank %d, got %d", i, i+1, rankings[i].Rank)
		}
	}
	if rankings[0].ConceptName != "Mechanics" {
		t.Errorf("Expected concept name joined from storage, got %q", rankings[0].ConceptName)
	}
}

func TestGetSnapshotReadThroughCache(t *testing.T) {
	mem := newMemoryCache()
	analyzer, stats, _ := newTestAnalyzer(mem)
	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// First read misses and populates the cache.
	if _, err := analyzer.GetSnapshot(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mem.sets != 1 {
		t.Fatalf("Expected one cache write, got %d", mem.sets)
	}

	// Second read must be served from the cache without touching
	// storage counts.
	countsBefore := stats.countCalls
	snap, err := analyzer.GetSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.countCalls != countsBefore {
		t.Errorf("Expected cached read to skip storage, counts went %d -> %d", countsBefore, stats.countCalls)
	}
	if snap.TotalQuestions != 10 {
		t.Errorf("Expected cached total 10, got %d", snap.TotalQuestions)
	}
}

func TestAnalyzeTrendsInvalidatesCache(t *testing.T) {
	mem := newMemoryCache()
	analyzer, _, _ := newTestAnalyzer(mem)

	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := analyzer.GetSnapshot(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(mem.data) != 1 {
		t.Fatalf("Expected populated cache, got %d entries", len(mem.data))
	}

	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(mem.data) != 0 {
		t.Errorf("Expected cache entry deleted after analysis, got %d entries", len(mem.data))
	}
}

func TestCacheFailureFallsBackToStorage(t *testing.T) {
	analyzer, _, _ := newTestAnalyzer(brokenCache{})

	if _, err := analyzer.AnalyzeTrends(context.Background()); err != nil {
		t.Fatalf("Analysis must survive a broken cache, got: %v", err)
	}

	rankings, err := analyzer.GetConceptRanking(context.Background())
	if err != nil {
		t.Fatalf("Ranking must survive a broken cache, got: %v", err)
	}
	if len(rankings) != 3 {
		t.Errorf("Expected 3 rankings from direct storage, got %d", len(rankings))
	}
}
