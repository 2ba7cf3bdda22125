// Package services содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: регистрация, вход, проверка токена.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magelanov/travel-booking/internal/lib/apperr"
	"github.com/magelanov/travel-booking/internal/lib/jwt"
	"github.com/magelanov/travel-booking/internal/lib/password"
	"github.com/magelanov/travel-booking/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	// Повторный email — apperr.ErrConflict.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя или apperr.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и проверку JWT.
// Состояния сессии на сервере нет: токен самодостаточен.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// выпускает для него токен. Существующий email — apperr.ErrConflict.
func (s *AuthService) Register(ctx context.Context, email, name, surname, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Name:         name,
		Surname:      surname,
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}
	user.UID = uid
	return s.jwtMaker.GenerateToken(&user)
}

// Login проверяет пароль пользователя и выпускает JWT.
// И неизвестный email, и неверный пароль дают apperr.ErrInvalidCredentials,
// не раскрывая, какая из двух причин сработала.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", apperr.ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user)
}

// Authenticate проверяет JWT и возвращает полного пользователя из хранилища.
// Используется Authentication Gate: subject токена — email, по нему
// подтягивается учетная запись.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	user, err := s.users.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("load principal: %w", err)
	}
	return user, nil
}
