// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Claims расширяет стандартные claims JWT: subject токена — email пользователя,
// дополнительно переносятся UID и отображаемое имя. Токен самодостаточен,
// на сервере не хранится.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magelanov/travel-booking/internal/models"
)

// Claims описывает данные, хранящиеся в JWT.
type Claims struct {
	UserUID              string `json:"user_uid"` // UID пользователя
	Name                 string `json:"name"`     // Отображаемое имя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT токен для пользователя, подписывая его секретным ключом.
// Subject токена — email пользователя, время жизни определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserUID: user.UID,
		Name:    user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает Claims с данными, если токен корректен. У истекшего токена
// в цепочке ошибок будет jwt.ErrTokenExpired.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// ValidForUser сообщает, действителен ли токен именно для этого пользователя:
// подпись и срок в порядке, subject совпадает с email. Любая ошибка разбора
// трактуется как false и не пробрасывается наружу.
func (j *MakerImpl) ValidForUser(tokenStr string, user *models.User) bool {
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return false
	}
	return claims.Subject == user.Email
}
