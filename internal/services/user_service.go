package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var documentIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{6,20}$`)

const minimumAge = 13

// ageInYears measures age as the elapsed time since the birthdate mapped
// onto the Unix epoch, so a birthday later this year does not count yet.
func ageInYears(birthdate, now time.Time) int {
	return time.Unix(0, now.Sub(birthdate).Nanoseconds()).UTC().Year() - 1970
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserRepo
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserRepo) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after validating the profile and hashing
// their password.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.Name == "" || user.DocumentID == "" || user.Phone == "" || user.Username == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("%w: missing required user fields", ErrInvalidInput)
	}
	if len(strings.TrimSpace(user.Name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidInput)
	}
	if len(strings.TrimSpace(user.Username)) < 4 {
		return nil, fmt.Errorf("%w: username must be at least 4 characters", ErrInvalidInput)
	}
	if !documentIDRegex.MatchString(user.DocumentID) {
		logrus.WithField("documentId", user.DocumentID).Warn("Invalid document id during registration")
		return nil, fmt.Errorf("%w: invalid document id", ErrInvalidInput)
	}
	if !models.AllowedGenders[user.Gender] {
		logrus.WithField("gender", user.Gender).Warn("Invalid gender during registration")
		return nil, fmt.Errorf("%w: invalid gender", ErrInvalidInput)
	}
	if user.Birthdate.IsZero() {
		return nil, fmt.Errorf("%w: birthdate is required", ErrInvalidInput)
	}

	existing, _ := s.repo.GetUserByUsername(ctx, user.Username)
	if existing != nil {
		logrus.WithField("username", user.Username).Warn("Username already in use")
		return nil, fmt.Errorf("%w: username already in use", ErrAlreadyExists)
	}
	existing, _ = s.repo.GetUserByDocumentID(ctx, user.DocumentID)
	if existing != nil {
		logrus.WithField("documentId", user.DocumentID).Warn("Document id already registered")
		return nil, fmt.Errorf("%w: document id already registered", ErrAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashed)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser checks a username/password pair and returns the user.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		logrus.WithField("username", username).Warn("Login attempt for unknown username")
		return nil, fmt.Errorf("%w: wrong username or password", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("username", username).Warn("Login attempt with wrong password")
		return nil, fmt.Errorf("%w: wrong username or password", ErrInvalidCredentials)
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	DocumentID string `json:"documentId"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	Birthdate  string `json:"birthdate"`
}

// UpdateProfile applies profile edits for the given user.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, input UpdateProfileInput) (*models.User, error) {
	if input.Name == "" || input.Username == "" {
		return nil, fmt.Errorf("%w: name and username are required", ErrInvalidInput)
	}
	if input.Gender != "" && !models.AllowedGenders[input.Gender] {
		return nil, fmt.Errorf("%w: invalid gender", ErrInvalidInput)
	}

	update := map[string]interface{}{
		"name":     strings.TrimSpace(input.Name),
		"username": strings.TrimSpace(input.Username),
	}
	if input.DocumentID != "" {
		if !documentIDRegex.MatchString(input.DocumentID) {
			return nil, fmt.Errorf("%w: invalid document id", ErrInvalidInput)
		}
		update["document_id"] = strings.TrimSpace(input.DocumentID)
	}
	if input.Phone != "" {
		update["phone"] = strings.TrimSpace(input.Phone)
	}
	if input.Gender != "" {
		update["gender"] = input.Gender
	}
	if input.Birthdate != "" {
		birthdate, err := time.Parse("2006-01-02", input.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid birthdate", ErrInvalidInput)
		}
		if ageInYears(birthdate, time.Now()) < minimumAge {
			return nil, fmt.Errorf("%w: must be at least %d years old", ErrInvalidInput, minimumAge)
		}
		update["birthdate"] = birthdate
	}

	updated, err := s.repo.UpdateUser(ctx, id, update)
	if err != nil {
		logrus.WithField("userID", id.Hex()).WithError(err).Error("Failed to update user profile")
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	logrus.WithField("userID", id.Hex()).Info("User profile updated")
	return updated, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		logrus.WithField("userID", id.Hex()).Warn("Password change attempt with wrong current password")
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidCredentials)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: new password must be at least 8 characters", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	if _, err := s.repo.UpdateUser(ctx, id, map[string]interface{}{"hashed_password": string(hashed)}); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}

	logrus.WithField("userID", id.Hex()).Info("Password changed")
	return nil
}
