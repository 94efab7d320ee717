package favorite

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/middleware"
)

// SetupRoutes registra as rotas de favoritos
func (s *FavoriteService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService)

	app.Get("/favorites", s.GetFavorites, auth)
	app.Get("/favorites/ids", s.GetFavoriteIDs, auth)
	app.Post("/favorites/:postId", s.AddFavorite, auth)
	app.Delete("/favorites/:postId", s.RemoveFavorite, auth)
}
