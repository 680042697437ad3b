package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() *models.User {
	return &models.User{
		Name:       "Ana María",
		DocumentID: "CC123456",
		Phone:      "3001234567",
		Username:   "anamaria",
		Gender:     "femenino",
		Birthdate:  time.Date(1995, time.May, 20, 0, 0, 0, 0, time.UTC),
	}
}

func noExistingUsers() *mockUserRepo {
	return &mockUserRepo{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, fmt.Errorf("not found")
		},
		GetUserByDocumentIDFunc: func(ctx context.Context, documentID string) (*models.User, error) {
			return nil, fmt.Errorf("not found")
		},
		CreateUserFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = primitive.NewObjectID()
			return user, nil
		},
	}
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	svc := NewUserService(noExistingUsers())

	created, err := svc.RegisterUser(context.Background(), validRegistration(), "supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", created.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("supersecret")))
}

func TestRegisterUser_Validation(t *testing.T) {
	svc := NewUserService(noExistingUsers())

	tests := []struct {
		name   string
		mutate func(u *models.User)
	}{
		{"missing name", func(u *models.User) { u.Name = "" }},
		{"short username", func(u *models.User) { u.Username = "ab" }},
		{"bad document id", func(u *models.User) { u.DocumentID = "x!" }},
		{"bad gender", func(u *models.User) { u.Gender = "desconocido" }},
		{"missing birthdate", func(u *models.User) { u.Birthdate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validRegistration()
			tt.mutate(user)
			_, err := svc.RegisterUser(context.Background(), user, "supersecret")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := noExistingUsers()
	repo.GetUserByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{Username: username}, nil
	}
	svc := NewUserService(repo)

	_, err := svc.RegisterUser(context.Background(), validRegistration(), "supersecret")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, HashedPassword: string(hashed)}, nil
		},
	}
	svc := NewUserService(repo)

	_, err = svc.AuthenticateUser(context.Background(), "ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := svc.AuthenticateUser(context.Background(), "ana", "correct")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
}

func TestChangePassword_Rules(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	var savedUpdate map[string]interface{}
	repo := &mockUserRepo{
		GetUserByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return &models.User{ID: userID, HashedPassword: string(hashed)}, nil
		},
		UpdateUserFunc: func(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
			savedUpdate = update
			return &models.User{ID: id}, nil
		},
	}
	svc := NewUserService(repo)

	err = svc.ChangePassword(context.Background(), userID, "notit", "newpassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), userID, "oldpassword", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ChangePassword(context.Background(), userID, "oldpassword", "newpassword123")
	require.NoError(t, err)

	newHash, ok := savedUpdate["hashed_password"].(string)
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword123")))
}

func TestUpdateProfile_GenderValidated(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), UpdateProfileInput{
		Name:     "Ana",
		Username: "anamaria",
		Gender:   "desconocido",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfile_ParsesBirthdate(t *testing.T) {
	var savedUpdate map[string]interface{}
	repo := &mockUserRepo{
		UpdateUserFunc: func(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.User, error) {
			savedUpdate = update
			return &models.User{ID: id}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), UpdateProfileInput{
		Name:      "Ana",
		Username:  "anamaria",
		Birthdate: "1995-05-20",
	})
	require.NoError(t, err)

	birthdate, ok := savedUpdate["birthdate"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 1995, birthdate.Year())
}

func TestUpdateProfile_RejectsUnderage(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	tooYoung := time.Now().Add(-10 * 365 * 24 * time.Hour).Format("2006-01-02")
	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), UpdateProfileInput{
		Name:      "Ana",
		Username:  "anamaria",
		Birthdate: tooYoung,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAgeInYears(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 13, ageInYears(time.Date(2011, time.June, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 12, ageInYears(time.Date(2011, time.July, 1, 0, 0, 0, 0, time.UTC), now))
}
