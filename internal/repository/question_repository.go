package repository

import (
	"context"
	"time"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

// CreateMany bulk-inserts questions, assigning identities where absent.
// Insertion is unordered so one bad document does not abort the batch.
func (r *QuestionRepository) CreateMany(ctx context.Context, questions []models.Question) (int, error) {
	docs := make([]interface{}, 0, len(questions))
	now := time.Now()
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = primitive.NewObjectID().Hex()
		}
		questions[i].CreatedAt = now
		questions[i].UpdatedAt = now
		docs = append(docs, questions[i])
	}
	res, err := r.Col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		return len(res.InsertedIDs), err
	}
	return 0, err
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now()
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CountAll returns the total number of questions in the bank.
func (r *QuestionRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

// CountByConcept returns the number of questions tagged with a concept.
func (r *QuestionRepository) CountByConcept(ctx context.Context, conceptID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"concept_id": conceptID})
}

// CountByConceptPerYear groups a concept's dated questions by
// appearance year. Questions without a year are excluded.
func (r *QuestionRepository) CountByConceptPerYear(ctx context.Context, conceptID string) (map[int]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"concept_id":    conceptID,
			"year_appeared": bson.M{"$gt": 0},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$year_appeared",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[int]int)
	for cur.Next(ctx) {
		var row struct {
			Year  int `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Year] = row.Count
	}
	return counts, nil
}

// SampleQuestions draws up to limit unused questions for a concept in
// store-random order. Difficulty is optional; excludeIDs are never
// returned again.
func (r *QuestionRepository) SampleQuestions(ctx context.Context, conceptID, difficulty string, excludeIDs []string, limit int) ([]models.Question, error) {
	if limit <= 0 {
		return nil, nil
	}
	match := bson.M{"concept_id": conceptID}
	if difficulty != "" {
		match["difficulty"] = difficulty
	}
	if len(excludeIDs) > 0 {
		match["_id"] = bson.M{"$nin": excludeIDs}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": limit}}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}
