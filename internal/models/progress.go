package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is one dated record of whether a habit was completed on a given
// occasion. Entries are immutable once created: there is no update or delete
// operation anywhere in the API.
type Progress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habit_id"`
	Date      time.Time          `bson:"date" json:"date"`
	Completed bool               `bson:"completed" json:"completed"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
