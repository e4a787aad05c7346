package parkingapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрирует swagger-документацию для /docs.
	_ "github.com/magabrotheeeer/parking-service/docs"

	"github.com/magabrotheeeer/parking-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/premium/activate"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/premium/cancel"
	ticketcreate "github.com/magabrotheeeer/parking-service/internal/http/handlers/tickets/create"
	ticketlist "github.com/magabrotheeeer/parking-service/internal/http/handlers/tickets/list"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/users/avatar"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/users/password"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/users/profile"
	"github.com/magabrotheeeer/parking-service/internal/http/handlers/users/tickets"
	vehiclecreate "github.com/magabrotheeeer/parking-service/internal/http/handlers/vehicles/create"
	vehiclelist "github.com/magabrotheeeer/parking-service/internal/http/handlers/vehicles/list"
	vehicleremove "github.com/magabrotheeeer/parking-service/internal/http/handlers/vehicles/remove"
	"github.com/magabrotheeeer/parking-service/internal/http/middlewarectx"
)

// AuthService: регистрация, вход и проверка токена.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.TokenValidator
}

// UserService: профиль пользователя.
type UserService interface {
	profile.Service
	avatar.Service
	password.Service
	tickets.Service
}

// PremiumService: жизненный цикл подписки.
type PremiumService interface {
	activate.Service
	cancel.Service
}

// ParkingService: машины и билеты.
type ParkingService interface {
	vehiclecreate.Service
	vehiclelist.Service
	vehicleremove.Service
	ticketcreate.Service
	ticketlist.Service
}

// Services собирает зависимости обработчиков.
type Services struct {
	Auth    AuthService
	Users   UserService
	Premium PremiumService
	Parking ParkingService
	Health  health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, limiter *middlewarectx.RateLimiter, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/users/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Get("/users/me", profile.New(logger, s.Users).ServeHTTP)
			r.Get("/users/me/tickets", tickets.New(logger, s.Users).ServeHTTP)
			r.Post("/users/me/avatar", avatar.New(logger, s.Users).ServeHTTP)
			r.Post("/users/me/password", password.New(logger, s.Users).ServeHTTP)
			r.Post("/users/me/premium", activate.New(logger, s.Premium).ServeHTTP)
			r.Post("/users/me/premium/cancel", cancel.New(logger, s.Premium).ServeHTTP)

			r.Get("/vehicles", vehiclelist.New(logger, s.Parking).ServeHTTP)
			r.Post("/vehicles", vehiclecreate.New(logger, s.Parking).ServeHTTP)
			r.Delete("/vehicles/{id}", vehicleremove.New(logger, s.Parking).ServeHTTP)

			r.Get("/tickets", ticketlist.New(logger, s.Parking).ServeHTTP)
			r.Post("/tickets", ticketcreate.New(logger, s.Parking).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
