package models

import "time"

// Vehicle: транспортное средство пользователя.
type Vehicle struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Plate     string    `json:"plate"` // Госномер, уникален в системе
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyVehicle используется для приёма данных нового транспортного средства.
type DummyVehicle struct {
	Brand string `json:"brand" validate:"required"`
	Model string `json:"model" validate:"required"`
	Year  int    `json:"year" validate:"required,gt=1885,lt=2200"`
	Plate string `json:"plate" validate:"required,max=16"`
	Color string `json:"color,omitempty" validate:"omitempty,max=32"`
}
