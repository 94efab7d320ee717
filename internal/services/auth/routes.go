package auth

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/middleware"
)

// SetupRoutes registra as rotas de autenticação e conta
func (s *AuthService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService)

	app.Post("/auth/register", s.Register)
	app.Post("/auth/login", s.Login)

	// Trocar senha (logado)
	app.Patch("/auth/me/password", s.ChangePassword, auth)

	// Redefinição de senha por e-mail
	app.Post("/auth/forgot-password", s.ForgotPassword)
	app.Post("/auth/reset-password", s.ResetPassword)

	// Perfil do usuário autenticado
	app.Get("/me", s.Me, auth)
}
