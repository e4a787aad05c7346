package models

import "time"

// Ticket: купленный пользователем парковочный билет.
type Ticket struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	Price           int64     `json:"price"` // Цена в минимальных единицах валюты
	Availability    int       `json:"availability"`
	Location        string    `json:"location,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DummyTicket используется для приёма данных билета из JSON-запроса.
type DummyTicket struct {
	Type            string `json:"type" validate:"required"`
	Price           int64  `json:"price" validate:"gte=0"`
	Availability    int    `json:"availability" validate:"required,gt=0"`
	Location        string `json:"location,omitempty" validate:"omitempty,max=255"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
}
