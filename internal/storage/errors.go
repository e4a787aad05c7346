// Package storage объявляет ошибки слоя хранения, общие для всех реализаций.
package storage

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrPlateExists     = errors.New("vehicle with this plate already exists")
	// ErrUnavailable оборачивает сбои самой базы: обрыв соединения, таймаут, ошибка драйвера.
	ErrUnavailable = errors.New("storage unavailable")
)
