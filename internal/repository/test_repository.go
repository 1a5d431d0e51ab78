package repository

import (
	"context"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, test)
	return err
}

func (r *TestRepository) FindByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&test)
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) FindAll(ctx context.Context) ([]models.Test, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var tests []models.Test
	for cur.Next(ctx) {
		var t models.Test
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, nil
}
