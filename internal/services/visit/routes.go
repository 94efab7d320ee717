package visit

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/middleware"
)

// SetupRoutes registra as rotas de solicitações de visita
func (s *VisitService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService)

	// interessado solicita visita em um anúncio
	app.Post("/posts/:postId/visit-requests", s.CreateVisitRequest, auth)

	// interessado acompanha suas solicitações
	app.Get("/my/visit-requests", s.GetMyVisitRequests, auth)

	// dono vê as solicitações recebidas
	app.Get("/my/received-visit-requests", s.GetReceivedVisitRequests, auth)

	// dono aprova ou rejeita
	app.Patch("/visit-requests/:id", s.UpdateVisitRequestStatus, auth)

	// contato liberado apenas após aprovação
	app.Get("/posts/:id/contact", s.GetPostContact, auth)
}
