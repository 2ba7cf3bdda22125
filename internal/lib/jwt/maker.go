// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"time"

	"github.com/magelanov/travel-booking/internal/models"
)

// Maker описывает интерфейс для выпуска и разбора JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя.
	GenerateToken(user *models.User) (string, error)
	// ParseToken возвращает *Claims, если токен валиден.
	ParseToken(tokenStr string) (*Claims, error)
	// ValidForUser проверяет, что токен действителен для данного пользователя.
	ValidForUser(tokenStr string, user *models.User) bool
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL). Потеря или ротация ключа делает
// недействительными все выпущенные токены, переходного окна нет.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
