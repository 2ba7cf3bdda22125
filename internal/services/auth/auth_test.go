package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/jwt"
	"github.com/magelanov/travel-booking/internal/lib/password"
	"github.com/magelanov/travel-booking/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() *jwt.MakerImpl {
	return jwt.NewJWTMaker("test-secret-key", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("успешная регистрация выпускает токен", func(t *testing.T) {
		users := new(UsersMock)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			// Пароль хэшируется до записи в хранилище.
			return u.Email == "alice@example.com" && u.PasswordHash != "secret1" &&
				password.CompareHash(u.PasswordHash, "secret1") == nil
		})).Return("uid-alice", nil)

		svc := NewAuthService(users, newMaker())
		token, err := svc.Register(context.Background(), "alice@example.com", "Alice", "Smith", "secret1")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := newMaker().ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Subject)
		assert.Equal(t, "uid-alice", claims.UserUID)
		users.AssertExpectations(t)
	})

	t.Run("повторная регистрация занятого email", func(t *testing.T) {
		users := new(UsersMock)
		users.On("CreateUser", mock.Anything, mock.Anything).Return("", apperr.ErrConflict)

		svc := NewAuthService(users, newMaker())
		_, err := svc.Register(context.Background(), "alice@example.com", "Alice", "Smith", "secret1")

		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := password.GetHash("secret1")
	alice := &models.User{UID: "uid-alice", Email: "alice@example.com", PasswordHash: hashed}

	t.Run("успешный вход", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

		svc := NewAuthService(users, newMaker())
		token, err := svc.Login(context.Background(), "alice@example.com", "secret1")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

		svc := NewAuthService(users, newMaker())
		_, err := svc.Login(context.Background(), "alice@example.com", "wrongpass")

		assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
	})

	t.Run("неизвестный email дает ту же ошибку, что и неверный пароль", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, apperr.ErrNotFound)

		svc := NewAuthService(users, newMaker())
		_, err := svc.Login(context.Background(), "ghost@example.com", "secret1")

		assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	hashed, _ := password.GetHash("secret1")
	alice := &models.User{UID: "uid-alice", Email: "alice@example.com", Name: "Alice", PasswordHash: hashed}

	t.Run("валидный токен возвращает пользователя из хранилища", func(t *testing.T) {
		maker := newMaker()
		token, err := maker.GenerateToken(alice)
		assert.NoError(t, err)

		users := new(UsersMock)
		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

		svc := NewAuthService(users, maker)
		got, err := svc.Authenticate(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, alice.UID, got.UID)
	})

	t.Run("мусорный токен", func(t *testing.T) {
		users := new(UsersMock)

		svc := NewAuthService(users, newMaker())
		_, err := svc.Authenticate(context.Background(), "not.a.token")

		assert.Error(t, err)
		users.AssertNotCalled(t, "GetUserByEmail")
	})

	t.Run("просроченный токен отклоняется", func(t *testing.T) {
		expiredMaker := jwt.NewJWTMaker("test-secret-key", -time.Minute)
		token, err := expiredMaker.GenerateToken(alice)
		assert.NoError(t, err)

		users := new(UsersMock)

		svc := NewAuthService(users, newMaker())
		_, err = svc.Authenticate(context.Background(), token)

		assert.Error(t, err)
		users.AssertNotCalled(t, "GetUserByEmail")
	})

	t.Run("токен с другим секретом отклоняется", func(t *testing.T) {
		otherMaker := jwt.NewJWTMaker("other-secret", time.Hour)
		token, err := otherMaker.GenerateToken(alice)
		assert.NoError(t, err)

		users := new(UsersMock)

		svc := NewAuthService(users, newMaker())
		_, err = svc.Authenticate(context.Background(), token)

		assert.Error(t, err)
	})
}
