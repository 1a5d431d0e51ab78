package service

import (
	"context"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type ConceptService struct {
	Repo *repository.ConceptRepository
}

func NewConceptService(repo *repository.ConceptRepository) *ConceptService {
	return &ConceptService{Repo: repo}
}

func (s *ConceptService) ListConcepts(ctx context.Context) ([]models.Concept, error) {
	return s.Repo.FindAll(ctx)
}

func (s *ConceptService) GetConcept(ctx context.Context, id string) (*models.Concept, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ConceptService) CreateConcept(ctx context.Context, concept *models.Concept) error {
	return s.Repo.Create(ctx, concept)
}

func (s *ConceptService) UpdateConcept(ctx context.Context, id string, update map[string]interface{}) error {
	return s.Repo.Update(ctx, id, bson.M(update))
}

func (s *ConceptService) DeleteConcept(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
