// Package models содержит доменные структуры поездок,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Trip представляет поездку пользователя: направление и диапазон дат.
// Инвариант дат: StartDate <= EndDate, при создании StartDate не раньше сегодня.
// Поездка принадлежит ровно одному пользователю, все операции над ней
// выполняются только владельцем.
type Trip struct {
	ID        int64     // Идентификатор поездки
	OwnerUID  string    // UID пользователя-владельца
	CityID    int64     // Город назначения
	CityName  string    // Название города (подтягивается при чтении)
	Name      string    // Название поездки, по умолчанию — название города
	StartDate time.Time // Дата начала
	EndDate   time.Time // Дата окончания
}

// DummyTrip используется для приёма данных поездки из JSON-запроса.
// Даты приходят строками в формате 2006-01-02, чтобы их можно было
// валидировать и парсить вручную.
type DummyTrip struct {
	CityID    int64  `json:"city_id" validate:"required"`                     // Город назначения
	Name      string `json:"name"`                                           // Название, может быть пустым
	StartDate string `json:"start_date" validate:"required"` // Дата начала
	EndDate   string `json:"end_date" validate:"required"`   // Дата окончания
}

// TripReminder содержит данные для письма-напоминания о скорой поездке.
type TripReminder struct {
	Email     string
	Name      string
	TripName  string
	CityName  string
	StartDate time.Time
}
