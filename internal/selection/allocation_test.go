package selection

import (
	"testing"

	"mocktest-service/internal/models"
)

func rankingsFromWeights(weights map[string]float64) []models.ConceptRanking {
	// Fixed iteration order keeps the cases readable.
	ids := []string{"c1", "c2", "c3", "c4", "c5"}
	var rankings []models.ConceptRanking
	for _, id := range ids {
		if w, ok := weights[id]; ok {
			rankings = append(rankings, models.ConceptRanking{ConceptID: id, Importance: w})
		}
	}
	return rankings
}

func TestDistributeQuestionsByConcept(t *testing.T) {
	testCases := []struct {
		name       string
		weights    map[string]float64
		totalCount int
		expected   map[string]int
	}{
		{
			"proportional exact split",
			map[string]float64{"c1": 0.5, "c2": 0.3, "c3": 0.2},
			100,
			map[string]int{"c1": 50, "c2": 30, "c3": 20},
		},
		{
			"largest remainders win the leftover units",
			map[string]float64{"c1": 0.5, "c2": 0.3, "c3": 0.2},
			7,
			// ideals 3.5 / 2.1 / 1.4 -> floors 3/2/1, one unit left,
			// c1 has the largest fraction
			map[string]int{"c1": 4, "c2": 2, "c3": 1},
		},
		{
			"single concept takes everything",
			map[string]float64{"c1": 0.42},
			65,
			map[string]int{"c1": 65},
		},
		{
			"zero total count",
			map[string]float64{"c1": 0.6, "c2": 0.4},
			0,
			map[string]int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DistributeQuestionsByConcept(rankingsFromWeights(tc.weights), tc.totalCount)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %d allocations, got %d", len(tc.expected), len(got))
			}
			for id, want := range tc.expected {
				if got[id] != want {
					t.Errorf("Concept %s: expected %d, got %d", id, want, got[id])
				}
			}
		})
	}
}

func TestDistributeQuestionsExactSum(t *testing.T) {
	weightSets := []map[string]float64{
		{"c1": 0.33, "c2": 0.33, "c3": 0.34},
		{"c1": 1, "c2": 1, "c3": 1, "c4": 1, "c5": 1},
		{"c1": 0.123, "c2": 0.456, "c3": 0.789},
		{"c1": 0.01, "c2": 0.99},
	}
	totals := []int{0, 1, 7, 13, 65, 100, 997}

	for _, weights := range weightSets {
		for _, total := range totals {
			got := DistributeQuestionsByConcept(rankingsFromWeights(weights), total)
			sum := 0
			for _, n := range got {
				sum += n
			}
			if sum != total {
				t.Errorf("Weights %v, total %d: allocations sum to %d", weights, total, sum)
			}
		}
	}
}

func TestDistributeQuestionsZeroImportance(t *testing.T) {
	rankings := rankingsFromWeights(map[string]float64{"c1": 0, "c2": 0, "c3": 0})

	got := DistributeQuestionsByConcept(rankings, 10)

	// ceil(10/3) = 4 each; the over-allocation is trimmed after selection
	for _, r := range rankings {
		if got[r.ConceptID] != 4 {
			t.Errorf("Concept %s: expected uniform 4, got %d", r.ConceptID, got[r.ConceptID])
		}
	}
}

func TestDistributeQuestionsTieBreakDeterministic(t *testing.T) {
	// Equal importance and equal remainders: the extra unit must always
	// land on the lowest concept ID.
	rankings := rankingsFromWeights(map[string]float64{"c1": 0.2, "c2": 0.2, "c3": 0.2})

	for i := 0; i < 20; i++ {
		got := DistributeQuestionsByConcept(rankings, 7)
		if got["c1"] != 3 || got["c2"] != 2 || got["c3"] != 2 {
			t.Fatalf("Run %d: expected {c1:3 c2:2 c3:2}, got %v", i, got)
		}
	}
}
