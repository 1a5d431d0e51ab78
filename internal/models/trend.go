package models

import "time"

// ConceptTrend is the persisted per-concept analysis row. One row per
// concept; AnalyzeTrends overwrites it on every run.
type ConceptTrend struct {
	ConceptID          string      `bson:"_id" json:"concept_id"`
	Frequency          float64     `bson:"frequency" json:"frequency"`
	Importance         float64     `bson:"importance" json:"importance"`
	YearlyDistribution map[int]int `bson:"yearly_distribution" json:"yearly_distribution"`
	LastUpdated        time.Time   `bson:"last_updated" json:"last_updated"`
}

// ConceptRanking is derived from ConceptTrend rows on demand and never
// persisted. Rank is 1-based, ordered by frequency descending with
// importance descending as the tie-break.
type ConceptRanking struct {
	ConceptID          string      `json:"concept_id"`
	ConceptName        string      `json:"concept_name"`
	Rank               int         `json:"rank"`
	Frequency          float64     `json:"frequency"`
	Importance         float64     `json:"importance"`
	YearlyDistribution map[int]int `json:"yearly_distribution"`
}
