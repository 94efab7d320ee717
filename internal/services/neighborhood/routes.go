package neighborhood

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes registra as rotas de bairros
func (s *NeighborhoodService) SetupRoutes(app *fiber.App) {
	app.Get("/neighborhoods", s.ListNeighborhoods)
}
