package repository

import (
	"context"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrendRepository struct {
	Col *mongo.Collection
}

func NewTrendRepository(db *mongo.Database) *TrendRepository {
	return &TrendRepository{Col: db.Collection("concept_trends")}
}

// Upsert overwrites the single trend row for a concept, creating it on
// the first analysis run.
func (r *TrendRepository) Upsert(ctx context.Context, trend *models.ConceptTrend) error {
	filter := bson.M{"_id": trend.ConceptID}
	update := bson.M{"$set": bson.M{
		"frequency":           trend.Frequency,
		"importance":          trend.Importance,
		"yearly_distribution": trend.YearlyDistribution,
		"last_updated":        trend.LastUpdated,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *TrendRepository) FindAll(ctx context.Context) ([]models.ConceptTrend, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var trends []models.ConceptTrend
	for cur.Next(ctx) {
		var t models.ConceptTrend
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, nil
}
