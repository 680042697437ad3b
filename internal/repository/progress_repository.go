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

// ProgressRepository handles database operations related to progress entries.
// Entries are append-only: there are no update or delete methods.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress"),
	}
}

// CreateProgress inserts a new progress entry.
func (r *ProgressRepository) CreateProgress(ctx context.Context, progress *models.Progress) (*models.Progress, error) {
	progress.CreatedAt = time.Now()
	if progress.Date.IsZero() {
		progress.Date = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert progress entry")
		return nil, fmt.Errorf("failed to insert progress entry: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted progress ID")
		return nil, fmt.Errorf("failed to cast inserted progress ID")
	}
	progress.ID = insertedID

	logger.Log.WithFields(map[string]interface{}{
		"progress_id": progress.ID.Hex(),
		"habit_id":    progress.HabitID.Hex(),
	}).Info("Progress entry created")
	return progress, nil
}

// CountCompleted counts every completed entry ever logged for a habit. A full
// count rather than an incremental one, so backdated and out-of-order entries
// are always reflected.
func (r *ProgressRepository) CountCompleted(ctx context.Context, habitID primitive.ObjectID) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"habit_id":  habitID,
		"completed": true,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to count completed entries")
		return 0, fmt.Errorf("failed to count completed entries: %w", err)
	}
	return int(count), nil
}

// GetHistory fetches a habit's most recent entries, newest first.
func (r *ProgressRepository) GetHistory(ctx context.Context, habitID primitive.ObjectID, limit int64) ([]models.Progress, error) {
	var entries []models.Progress

	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"habit_id": habitID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to fetch progress history")
		return nil, fmt.Errorf("failed to fetch progress history: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var entry models.Progress
		if err := cursor.Decode(&entry); err != nil {
			logger.Log.WithError(err).Error("Failed to decode progress entry")
			return nil, fmt.Errorf("failed to decode progress entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
