package mongo

import (
	"context"
	"errors"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "workout_plans"

// mongoPlanRepository implements repository.WorkoutPlanRepository. Each plan
// is one document keyed by the plan id, with workouts and exercises embedded
// and a userId field scoping it to its owner.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new WorkoutPlan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a plan document keyed by its id.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == "" || plan.UserID == "" {
		return errors.New("plan requires an id and a userId")
	}

	_, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByUserID fetches all plan documents for a user, newest first. Every
// document is decoded independently: a single malformed document is skipped
// and counted rather than aborting the load.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID string) (repository.PlanLoadResult, error) {
	var result repository.PlanLoadResult

	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return result, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var plan domain.WorkoutPlan
		if err := cursor.Decode(&plan); err != nil {
			result.Failed++
			continue
		}
		result.Plans = append(result.Plans, plan)
	}
	if err := cursor.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// Delete removes a plan document. The userId in the filter ensures a user
// can only delete their own plans. Deleting an absent plan is not an error.
func (r *mongoPlanRepository) Delete(ctx context.Context, userID, planID string) error {
	filter := bson.M{"_id": planID, "userId": userID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// SetWorkoutCompleted stamps completedAt on one embedded workout. The stamp
// is the only mutation a plan document ever sees after creation.
func (r *mongoPlanRepository) SetWorkoutCompleted(ctx context.Context, userID, planID, workoutID string, completedAt time.Time) error {
	filter := bson.M{
		"_id":         planID,
		"userId":      userID,
		"workouts.id": workoutID,
	}
	update := bson.M{
		"$set": bson.M{"workouts.$.completedAt": completedAt},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The main query pattern: all plans for a user, newest first.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
