package post

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/middleware"
)

// SetupRoutes registra as rotas de anúncios
func (s *PostService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService)

	// público
	app.Get("/posts", s.ListPosts)

	// logado (precisa vir antes de "/:id")
	app.Get("/posts/me/mine", s.ListMyPosts, auth)
	app.Post("/posts", s.CreatePost, auth)
	app.Put("/posts/:id", s.UpdatePost, auth)
	app.Patch("/posts/:id/status", s.SetPostStatus, auth)

	// público
	app.Get("/posts/:id", s.GetPostByID)
}
