package service

import (
	"context"
	"fmt"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/selection"
	"mocktest-service/internal/trend"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestStore persists assembled tests.
type TestStore interface {
	Create(ctx context.Context, test *models.Test) error
	FindByID(ctx context.Context, id string) (*models.Test, error)
	FindAll(ctx context.Context) ([]models.Test, error)
}

// SessionStore records new test attempts.
type SessionStore interface {
	Create(ctx context.Context, session *models.TestSession) error
}

// TestService runs the assembly pipeline: trend ranking, concept
// allocation, difficulty-constrained selection, shortfall backfill and
// finalization. A test is written exactly once, after the full target
// count is satisfied and sources validated.
type TestService struct {
	analyzer *trend.Analyzer
	selector *selection.Selector
	tests    TestStore
	sessions SessionStore
}

func NewTestService(analyzer *trend.Analyzer, selector *selection.Selector, tests TestStore, sessions SessionStore) *TestService {
	return &TestService{
		analyzer: analyzer,
		selector: selector,
		tests:    tests,
		sessions: sessions,
	}
}

// GenerateMockTest assembles and persists a mock test for the given
// config. Unset options fall back to 65 questions and a 0.3/0.5/0.2
// difficulty mix.
func (s *TestService) GenerateMockTest(ctx context.Context, userID string, config models.TestConfig) (*models.Test, error) {
	count := config.QuestionCount
	if count <= 0 {
		count = models.DefaultQuestionCount
	}
	dist := config.DifficultyDistribution
	if dist == nil {
		d := models.DefaultDifficultyDistribution()
		dist = &d
	}

	questions, err := s.selectQuestions(ctx, count, config.FocusConcepts, dist)
	if err != nil {
		return nil, err
	}

	selection.Shuffle(questions)
	questions = questions[:count]

	if err := selection.EnsureValidSources(questions); err != nil {
		return nil, err
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	test := &models.Test{
		QuestionIDs:     ids,
		TotalQuestions:  count,
		DurationSeconds: models.DefaultTestDurationSeconds,
		CreatedAt:       time.Now(),
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to persist test: %w", err)
	}
	return test, nil
}

// SelectQuestionsByTrend draws count questions weighted by concept
// importance, without persisting anything. A nil distribution selects
// by concept allocation alone.
func (s *TestService) SelectQuestionsByTrend(ctx context.Context, count int, focusConcepts []string, dist *models.DifficultyDistribution) ([]models.Question, error) {
	return s.selectQuestions(ctx, count, focusConcepts, dist)
}

func (s *TestService) selectQuestions(ctx context.Context, count int, focusConcepts []string, dist *models.DifficultyDistribution) ([]models.Question, error) {
	rankings, err := s.analyzer.GetConceptRanking(ctx)
	if err != nil {
		return nil, err
	}
	if len(rankings) == 0 {
		return nil, selection.ErrNoTrendData
	}

	if len(focusConcepts) > 0 {
		focus := make(map[string]bool, len(focusConcepts))
		for _, id := range focusConcepts {
			focus[id] = true
		}
		filtered := rankings[:0:0]
		for _, r := range rankings {
			if focus[r.ConceptID] {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return nil, selection.ErrNoConceptsForFilter
		}
		rankings = filtered
	}

	return s.selector.SelectByTrend(ctx, count, rankings, dist)
}

func (s *TestService) GetTest(ctx context.Context, id string) (*models.Test, error) {
	return s.tests.FindByID(ctx, id)
}

func (s *TestService) ListTests(ctx context.Context) ([]models.Test, error) {
	return s.tests.FindAll(ctx)
}

// CreateTestSession verifies the test exists and records an
// in-progress attempt with zero accumulated time.
func (s *TestService) CreateTestSession(ctx context.Context, userID, testID string) (string, error) {
	if _, err := s.tests.FindByID(ctx, testID); err != nil {
		return "", fmt.Errorf("test %s not found: %w", testID, err)
	}
	session := &models.TestSession{
		ID:               primitive.NewObjectID().Hex(),
		TestID:           testID,
		UserID:           userID,
		Status:           models.SessionStatusInProgress,
		TimeSpentSeconds: 0,
		StartTime:        time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.ID, nil
}
