package selection

import (
	"math"
	"sort"

	"mocktest-service/internal/models"
)

// DistributeQuestionsByConcept apportions totalCount across concepts
// proportionally to importance, using the largest-remainder method so
// the allocations always sum to totalCount exactly.
//
// When every importance is zero, each concept gets ceil(totalCount/n);
// the deliberate over-allocation is trimmed after selection.
func DistributeQuestionsByConcept(rankings []models.ConceptRanking, totalCount int) map[string]int {
	allocation := make(map[string]int, len(rankings))
	if len(rankings) == 0 || totalCount <= 0 {
		return allocation
	}

	totalImportance := 0.0
	for _, r := range rankings {
		totalImportance += r.Importance
	}

	if totalImportance == 0 {
		uniform := int(math.Ceil(float64(totalCount) / float64(len(rankings))))
		for _, r := range rankings {
			allocation[r.ConceptID] = uniform
		}
		return allocation
	}

	type remainder struct {
		conceptID  string
		fraction   float64
		importance float64
	}

	remainders := make([]remainder, 0, len(rankings))
	assigned := 0
	for _, r := range rankings {
		ideal := r.Importance / totalImportance * float64(totalCount)
		base := int(math.Floor(ideal))
		allocation[r.ConceptID] = base
		assigned += base
		remainders = append(remainders, remainder{
			conceptID:  r.ConceptID,
			fraction:   ideal - float64(base),
			importance: r.Importance,
		})
	}

	// Hand the leftover units to the largest fractional remainders.
	// Ties fall back to importance, then concept ID so the order is
	// deterministic.
	sort.Slice(remainders, func(i, j int) bool {
		if remainders[i].fraction != remainders[j].fraction {
			return remainders[i].fraction > remainders[j].fraction
		}
		if remainders[i].importance != remainders[j].importance {
			return remainders[i].importance > remainders[j].importance
		}
		return remainders[i].conceptID < remainders[j].conceptID
	})

	for i := 0; i < totalCount-assigned && i < len(remainders); i++ {
		allocation[remainders[i].conceptID]++
	}

	return allocation
}
