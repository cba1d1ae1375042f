package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/storage"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	testEmail := "staff@example.com"
	testPassword := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	testUser := models.User{
		ID:       uuid.New(),
		Email:    testEmail,
		Password: hashedPassword,
	}

	t.Run("successful login returns a token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserByEmail", ctx, testEmail).Return(testUser, nil).Once()

		service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

		token, err := service.Login(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserByEmail", ctx, testEmail).Return(testUser, nil).Once()

		service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

		_, err := service.Login(ctx, testEmail, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserByEmail", ctx, "ghost@example.com").
			Return(models.User{}, storage.ErrUserNotFound).Once()

		service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

		_, err := service.Login(ctx, "ghost@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_RegisterNewUser(t *testing.T) {
	ctx := context.Background()

	input := dto.UserRegisterInput{
		Name:     "Staff Member",
		Email:    "staff@example.com",
		Password: "password123",
	}

	t.Run("hashes the password before saving", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		wantID := uuid.New()
		mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == input.Email &&
				bcrypt.CompareHashAndPassword(u.Password, []byte(input.Password)) == nil
		})).Return(wantID, nil).Once()

		service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

		id, err := service.RegisterNewUser(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, wantID, id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("SaveUser", ctx, mock.Anything).
			Return(uuid.Nil, storage.ErrUserExists).Once()

		service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

		_, err := service.RegisterNewUser(ctx, input)
		assert.ErrorIs(t, err, ErrUserExist)
	})
}

func TestUserService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("IsAdmin", ctx, userID).Return(true, nil).Once()

	service := NewUserService(testLogger(), mockRepo, "secret", time.Hour)

	isAdmin, err := service.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
	mockRepo.AssertExpectations(t)
}
