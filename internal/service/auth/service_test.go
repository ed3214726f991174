package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"plataforma-pm/internal/config"
	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/auth"
	"plataforma-pm/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		FullName:     "Ana Torres",
		GlobalRole:   domain.GlobalRoleUser,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := auth.NewService(mockUsers, mockSessions, testConfig())

		user := activeUser(t, "correct-password")
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := auth.NewService(mockUsers, mockSessions, testConfig())

		user := activeUser(t, "correct-password")
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := auth.NewService(mockUsers, mockSessions, testConfig())

		mockUsers.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := auth.NewService(mockUsers, mockSessions, testConfig())

		user := activeUser(t, "correct-password")
		user.IsActive = false
		mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})
		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestValidateAccessToken(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	mockSessions := new(mocks.SessionRepository)
	svc := auth.NewService(mockUsers, mockSessions, testConfig())

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
