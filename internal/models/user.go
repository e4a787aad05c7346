package models

import "time"

// User представляет зарегистрированного пользователя парковки.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Username     string    // Имя пользователя (уникальное)
	PhoneNumber  string    // Телефон, используется для входа (уникальный)
	PasswordHash string    // Хэш пароля пользователя
	Avatar       string    // URL или base64 аватара
	Premium      Premium   // Состояние premium-подписки
	CreatedAt    time.Time // Дата регистрации
}

// UserField: поле, по которому проверяется уникальность пользователя.
type UserField string

const (
	UserFieldEmail    UserField = "email"
	UserFieldUsername UserField = "username"
	UserFieldPhone    UserField = "phone_number"
)

// PublicUser: профиль пользователя без хэша пароля, отдаётся клиенту и кэшируется.
type PublicUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phone_number"`
	Avatar      string    `json:"avatar,omitempty"`
	Premium     Premium   `json:"subscription"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public возвращает профиль пользователя без секретных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.UUID,
		Email:       u.Email,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		Premium:     u.Premium,
		CreatedAt:   u.CreatedAt,
	}
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
}
