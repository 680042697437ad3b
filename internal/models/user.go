package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account in the habit tracker.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	DocumentID     string             `bson:"document_id" json:"documentId"`
	Phone          string             `bson:"phone" json:"phone"`
	Username       string             `bson:"username" json:"username"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Gender         string             `bson:"gender" json:"gender"`
	Birthdate      time.Time          `bson:"birthdate" json:"birthdate"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the profile shape returned to clients, without credentials.
type PublicUser struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	DocumentID string             `json:"documentId"`
	Phone      string             `json:"phone"`
	Username   string             `json:"username"`
	Gender     string             `json:"gender"`
	Birthdate  time.Time          `json:"birthdate"`
}

// AllowedGenders is the closed set of valid gender values.
var AllowedGenders = map[string]bool{
	"masculino": true,
	"femenino":  true,
	"otro":      true,
}

// Public returns the credential-free view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		DocumentID: u.DocumentID,
		Phone:      u.Phone,
		Username:   u.Username,
		Gender:     u.Gender,
		Birthdate:  u.Birthdate,
	}
}
