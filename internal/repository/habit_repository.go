package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HabitRepository handles database operations related to habits.
type HabitRepository struct {
	collection *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository.
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

// CreateHabit inserts a new habit into the database.
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, fmt.Errorf("failed to insert habit: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted habit ID")
		return nil, fmt.Errorf("failed to cast inserted habit ID")
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID.
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Warn("Failed to find habit by ID")
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	return &habit, nil
}

// GetHabitsByUser fetches all habits belonging to a user.
func (r *HabitRepository) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	var habits []models.Habit

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			logger.Log.WithError(err).Error("Failed to decode habit")
			return nil, fmt.Errorf("failed to decode habit: %w", err)
		}
		habits = append(habits, habit)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(habits),
	}).Info("Habits fetched successfully")
	return habits, nil
}

// GetStrugglingHabits fetches up to limit habits of a user whose cached
// completion rate is below maxRate, in store order.
func (r *HabitRepository) GetStrugglingHabits(ctx context.Context, userID primitive.ObjectID, maxRate int, limit int64) ([]models.Habit, error) {
	var habits []models.Habit

	filter := bson.M{
		"user_id":         userID,
		"completion_rate": bson.M{"$lt": maxRate},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch struggling habits")
		return nil, fmt.Errorf("failed to fetch struggling habits: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			return nil, fmt.Errorf("failed to decode habit: %w", err)
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// GetAllHabits fetches every habit in the collection. Used by the background
// completion-rate refresher.
func (r *HabitRepository) GetAllHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch all habits")
		return nil, fmt.Errorf("failed to fetch all habits: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			return nil, fmt.Errorf("failed to decode habit: %w", err)
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// UpdateHabit replaces the mutable fields of an existing habit.
func (r *HabitRepository) UpdateHabit(ctx context.Context, id primitive.ObjectID, habit *models.Habit) (*models.Habit, error) {
	habit.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": habit})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit")
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit updated successfully")
	return habit, nil
}

// UpdateCompletionRate writes a freshly recomputed completion rate.
func (r *HabitRepository) UpdateCompletionRate(ctx context.Context, id primitive.ObjectID, rate int) error {
	update := bson.M{"$set": bson.M{
		"completion_rate": rate,
		"updated_at":      time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update completion rate")
		return fmt.Errorf("failed to update completion rate: %w", err)
	}
	return nil
}

// DeleteHabit deletes a habit owned by the given user. Progress entries are
// left in place; the habit's reference list is the only thing that dies with it.
func (r *HabitRepository) DeleteHabit(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return false, fmt.Errorf("failed to delete habit: %w", err)
	}

	if result.DeletedCount == 0 {
		return false, nil
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return true, nil
}
