// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Email является уникальным идентификатором учётной записи и не меняется
// после регистрации.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (логин)
	Name         string    // Имя
	Surname      string    // Фамилия
	PasswordHash string    // Хэш пароля пользователя, наружу не отдается
	CreatedAt    time.Time // Дата регистрации
}
