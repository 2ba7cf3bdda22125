// Package models содержит доменные структуры каталога размещений:
// города, отели и их номерной фонд. Со стороны бронирования каталог
// доступен только на чтение.
package models

// City представляет город из географического справочника.
type City struct {
	ID        int64   `json:"id"`        // Идентификатор города
	Name      string  `json:"name"`      // Название
	Country   string  `json:"country"`   // Страна
	Latitude  float64 `json:"latitude"`  // Широта
	Longitude float64 `json:"longitude"` // Долгота
}

// Stay представляет размещение (отель, апартаменты) в городе.
type Stay struct {
	ID          int64   `json:"id"`              // Идентификатор размещения
	CityID      int64   `json:"city_id"`         // Город
	Name        string  `json:"name"`            // Название
	Description string  `json:"description"`     // Описание
	Address     string  `json:"address"`         // Адрес
	Units       []*Unit `json:"units,omitempty"` // Номерной фонд, заполняется при детальном чтении
}

// Unit представляет отдельно бронируемый номер внутри размещения.
type Unit struct {
	ID            int64  `json:"id"`              // Идентификатор номера
	StayID        int64  `json:"stay_id"`         // Размещение, к которому относится номер
	RoomType      string `json:"room_type"`       // Тип номера: standard, suite и т.п.
	Capacity      int    `json:"capacity"`        // Вместимость, человек
	PricePerNight int    `json:"price_per_night"` // Цена за ночь
}
