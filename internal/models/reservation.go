// Package models содержит доменную модель бронирования номера в поездке.
package models

import "time"

// Reservation представляет бронь номера в рамках поездки на диапазон дат.
// Составной идентификатор — пара (TripID, UnitID). Инвариант дат:
// StartDate <= EndDate. Для одного номера интервалы живых броней попарно
// не пересекаются: пересечением считается existingStart <= newEnd AND
// existingEnd >= newStart (границы включительно).
type Reservation struct {
	TripID    int64     // Поездка, к которой привязана бронь
	UnitID    int64     // Забронированный номер
	StartDate time.Time // Дата заезда
	EndDate   time.Time // Дата выезда
	Unit      *Unit     // Сводка по номеру, заполняется при чтении
}

// DummyReservation используется для приёма данных брони из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 (календарные даты без времени).
type DummyReservation struct {
	UnitID    int64  `json:"unit_id" validate:"required"`                         // Номер
	StartDate string `json:"start_date" validate:"required"` // Дата заезда
	EndDate   string `json:"end_date" validate:"required"`   // Дата выезда
}
