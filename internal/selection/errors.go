package selection

import (
	"errors"
	"fmt"
)

// ErrNoTrendData means no analysis run has ever produced trend rows, so
// there is nothing to rank or select against.
var ErrNoTrendData = errors.New("no trend data available; run trend analysis first")

// ErrNoConceptsForFilter means a focus-concept filter matched none of
// the ranked concepts.
var ErrNoConceptsForFilter = errors.New("no ranked concepts match the focus filter")

// InvalidDifficultyDistributionError reports a distribution whose
// fractions are negative or sum outside [0.9, 1.1].
type InvalidDifficultyDistributionError struct {
	Sum float64
}

func (e *InvalidDifficultyDistributionError) Error() string {
	return fmt.Sprintf("invalid difficulty distribution: fractions sum to %.2f", e.Sum)
}

// InsufficientQuestionBankError reports that the bank could not supply
// the requested count even after backfill.
type InsufficientQuestionBankError struct {
	Requested int
	Available int
}

func (e *InsufficientQuestionBankError) Error() string {
	return fmt.Sprintf("insufficient question bank: requested %d, only %d available", e.Requested, e.Available)
}

// MissingSourceError reports selected questions lacking a source
// citation. The selection stage should make this unreachable; it is
// re-checked before any test is persisted.
type MissingSourceError struct {
	Count int
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("%d selected question(s) have no source citation", e.Count)
}
