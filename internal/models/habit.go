package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit represents a recurring behavior a user tracks against a target frequency.
type Habit struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Name           string               `bson:"name" json:"name"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	Category       string               `bson:"category" json:"category"`
	Frequency      string               `bson:"frequency" json:"frequency"`
	Goal           string               `bson:"goal,omitempty" json:"goal,omitempty"`
	StartDate      time.Time            `bson:"start_date" json:"start_date"`
	Streak         int                  `bson:"streak" json:"streak"`
	CompletionRate int                  `bson:"completion_rate" json:"completionRate"`
	Progress       []primitive.ObjectID `bson:"progress,omitempty" json:"progress,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// Frequency values a habit can be tracked at.
const (
	FrequencyDaily   = "diario"
	FrequencyWeekly  = "semanal"
	FrequencyMonthly = "mensual"
)

// AllowedFrequencies is the closed set of valid habit frequencies.
var AllowedFrequencies = map[string]bool{
	FrequencyDaily:   true,
	FrequencyWeekly:  true,
	FrequencyMonthly: true,
}

// CategoryInfo holds the display metadata for a habit category.
type CategoryInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// AllowedCategories maps every valid habit category to its display name and
// chart color. The set is closed; unknown categories are rejected at creation.
var AllowedCategories = map[string]CategoryInfo{
	"salud":          {Name: "Salud", Color: "#4BC0C0"},
	"aprendizaje":    {Name: "Aprendizaje", Color: "#9966FF"},
	"productividad":  {Name: "Productividad", Color: "#FFCE56"},
	"relaciones":     {Name: "Relaciones", Color: "#FF6384"},
	"finanzas":       {Name: "Finanzas", Color: "#36A2EB"},
	"espiritualidad": {Name: "Espiritualidad", Color: "#8AC249"},
	"creatividad":    {Name: "Creatividad", Color: "#EA5545"},
	"hogar":          {Name: "Hogar", Color: "#FF9F40"},
}
