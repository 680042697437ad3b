package services

import (
	"context"
	"fmt"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/jparra05/habit-tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habits below this cached completion rate get a personalized suggestion.
const strugglingRateThreshold = 50

// How many struggling habits feed the personalized list.
const maxPersonalized = 5

// genericRecommendations pads every response after the personalized ones.
var genericRecommendations = []models.Recommendation{
	{
		Title:       "Hidratación",
		Description: "Bebe 8 vasos de agua al día",
		Image:       "water.png",
		Category:    "salud",
	},
	{
		Title:       "Lectura",
		Description: "Lee 20 minutos diarios",
		Image:       "book.png",
		Category:    "aprendizaje",
	},
}

// RecommendationService turns a user's weakest habits into suggestions.
type RecommendationService struct {
	habitRepo HabitRepo
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(habitRepo HabitRepo) *RecommendationService {
	return &RecommendationService{habitRepo: habitRepo}
}

// GetRecommendations returns up to five suggestions built from the user's
// struggling habits, in store order, followed by the generic catalog.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID primitive.ObjectID) ([]models.Recommendation, error) {
	struggling, err := s.habitRepo.GetStrugglingHabits(ctx, userID, strugglingRateThreshold, maxPersonalized)
	if err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to fetch struggling habits")
		return nil, fmt.Errorf("failed to fetch struggling habits: %w", err)
	}

	recommendations := make([]models.Recommendation, 0, len(struggling)+len(genericRecommendations))
	for _, habit := range struggling {
		recommendations = append(recommendations, models.Recommendation{
			Title:       fmt.Sprintf("Mejora tu hábito: %s", habit.Name),
			Description: fmt.Sprintf("Intenta cumplir este hábito %s", habit.Frequency),
			Image:       fmt.Sprintf("%s.png", habit.Category),
			Category:    habit.Category,
		})
	}
	recommendations = append(recommendations, genericRecommendations...)

	logger.Log.WithFields(map[string]interface{}{
		"user_id":      userID.Hex(),
		"personalized": len(struggling),
		"total":        len(recommendations),
	}).Info("Recommendations built")
	return recommendations, nil
}
