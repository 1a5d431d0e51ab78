package service

import (
	"context"
	"errors"
	"fmt"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

var errEmptySource = errors.New("question requires a non-empty source citation")

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.Repo.FindAll(ctx)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if !question.HasSource() {
		return errEmptySource
	}
	if !models.ValidDifficulty(question.Difficulty) {
		return fmt.Errorf("unknown difficulty %q", question.Difficulty)
	}
	return s.Repo.Create(ctx, question)
}

// BulkImportResult reports the outcome of a historical-question import.
type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// BulkImport inserts historical questions, skipping invalid entries
// instead of aborting the batch.
func (s *QuestionService) BulkImport(ctx context.Context, questions []models.Question) (*BulkImportResult, error) {
	result := &BulkImportResult{}
	valid := make([]models.Question, 0, len(questions))
	for i := range questions {
		if !questions[i].HasSource() {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("question %d: missing source citation", i))
			continue
		}
		if !models.ValidDifficulty(questions[i].Difficulty) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("question %d: unknown difficulty %q", i, questions[i].Difficulty))
			continue
		}
		valid = append(valid, questions[i])
	}
	if len(valid) > 0 {
		inserted, err := s.Repo.CreateMany(ctx, valid)
		result.Imported = inserted
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, update map[string]interface{}) error {
	return s.Repo.Update(ctx, id, bson.M(update))
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
