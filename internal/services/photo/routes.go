package photo

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/middleware"
)

// SetupRoutes registra as rotas de fotos (anúncios e avatar)
func (s *PhotoService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService)

	app.Post("/posts/:id/photos", s.UploadPostPhotos, auth)
	app.Patch("/posts/:id/cover", s.SetPostCover, auth)
	app.Delete("/posts/:id/photos/:photoId", s.DeletePostPhoto, auth)

	app.Post("/users/me/avatar", s.UploadMyAvatar, auth)
}
