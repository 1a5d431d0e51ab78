package repository

import (
	"context"
	"time"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ConceptRepository struct {
	Col *mongo.Collection
}

func NewConceptRepository(db *mongo.Database) *ConceptRepository {
	return &ConceptRepository{Col: db.Collection("concepts")}
}

func (r *ConceptRepository) FindAll(ctx context.Context) ([]models.Concept, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var concepts []models.Concept
	for cur.Next(ctx) {
		var c models.Concept
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		concepts = append(concepts, c)
	}
	return concepts, nil
}

func (r *ConceptRepository) FindByID(ctx context.Context, id string) (*models.Concept, error) {
	var concept models.Concept
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&concept)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

func (r *ConceptRepository) Create(ctx context.Context, concept *models.Concept) error {
	if concept.ID == "" {
		concept.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	concept.CreatedAt = now
	concept.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, concept)
	return err
}

func (r *ConceptRepository) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now()
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *ConceptRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
