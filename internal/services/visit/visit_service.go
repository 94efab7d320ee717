package visit

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/utils"
)

// maxMessageLen limita o tamanho da mensagem da solicitação
const maxMessageLen = 500

// VisitService expõe o fluxo de solicitações de visita via HTTP
type VisitService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	workflow   *Workflow
}

// NewVisitService cria uma nova instância de VisitService
func NewVisitService(cfg *config.Config) *VisitService {
	return &VisitService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		workflow:   NewWorkflow(NewPgStore()),
	}
}

// CreateVisitRequest registra uma solicitação de visita em um anúncio
func (s *VisitService) CreateVisitRequest(c fiber.Ctx) error {
	requesterID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	var requestData struct {
		Message string `json:"message"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if len(requestData.Message) > maxMessageLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mensagem muito longa (máximo 500 caracteres)"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	vr, err := s.workflow.Create(ctx, postID, requesterID, requestData.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Anúncio não encontrado"})
		case errors.Is(err, ErrPostNotActive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Anúncio não está ativo"})
		case errors.Is(err, ErrOwnPost):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Você não pode solicitar visita no seu próprio anúncio"})
		case errors.Is(err, ErrAlreadyRequested):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Você já solicitou visita para este anúncio"})
		}
		log.Printf("Erro ao criar solicitação de visita: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao criar solicitação de visita"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": vr})
}

// GetMyVisitRequests lista as solicitações enviadas pelo usuário
func (s *VisitService) GetMyVisitRequests(c fiber.Ctx) error {
	requesterID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	requests, err := s.workflow.ListMine(ctx, requesterID)
	if err != nil {
		log.Printf("Erro ao listar solicitações enviadas: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar solicitações"})
	}

	return c.JSON(fiber.Map{"data": requests})
}

// GetReceivedVisitRequests lista as solicitações recebidas nos anúncios do dono
func (s *VisitService) GetReceivedVisitRequests(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	requests, err := s.workflow.ListReceived(ctx, ownerID)
	if err != nil {
		log.Printf("Erro ao listar solicitações recebidas: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar solicitações"})
	}

	return c.JSON(fiber.Map{"data": requests})
}

// UpdateVisitRequestStatus aprova ou rejeita uma solicitação (somente o dono)
func (s *VisitService) UpdateVisitRequestStatus(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de solicitação inválido"})
	}

	var requestData struct {
		Status string `json:"status"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	decision, err := s.workflow.Decide(ctx, requestID, ownerID, requestData.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDecision):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status deve ser APPROVED ou REJECTED"})
		case errors.Is(err, ErrNotDecidable):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sem permissão, solicitação não encontrada ou já foi processada"})
		}
		log.Printf("Erro ao atualizar solicitação de visita: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao atualizar solicitação"})
	}

	return c.JSON(fiber.Map{"data": decision})
}

// GetPostContact devolve o whatsapp do dono para solicitantes aprovados
func (s *VisitService) GetPostContact(c fiber.Ctx) error {
	requesterID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	whatsapp, err := s.workflow.Contact(ctx, postID, requesterID)
	if err != nil {
		if errors.Is(err, ErrContactNotReleased) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Contato ainda não liberado"})
		}
		log.Printf("Erro ao consultar contato do anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao consultar contato"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"whatsapp": whatsapp}})
}
