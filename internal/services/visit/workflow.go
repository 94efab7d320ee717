package visit

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/adotapet/adotapet-api/internal/models"
)

// Erros de domínio do fluxo de solicitação de visita
var (
	ErrPostNotFound     = errors.New("anúncio não encontrado")
	ErrPostNotActive    = errors.New("anúncio não está ativo")
	ErrOwnPost          = errors.New("não é possível solicitar visita no próprio anúncio")
	ErrAlreadyRequested = errors.New("visita já solicitada para este anúncio")
	ErrInvalidDecision  = errors.New("status deve ser APPROVED ou REJECTED")

	// ErrNotDecidable cobre três casos de forma indistinta: solicitação
	// inexistente, anúncio de outro dono ou solicitação já processada.
	ErrNotDecidable = errors.New("sem permissão, solicitação não encontrada ou já processada")

	// ErrContactNotReleased indica que não existe solicitação aprovada
	// entre o solicitante e o anúncio.
	ErrContactNotReleased = errors.New("contato ainda não liberado")
)

// PostRef é a projeção mínima de um anúncio usada pelo fluxo de visitas
type PostRef struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Status  string
}

// Store abstrai a persistência das solicitações de visita
type Store interface {
	// GetPost devolve dono e status do anúncio, ou ErrPostNotFound
	GetPost(ctx context.Context, postID uuid.UUID) (PostRef, error)

	// CreateRequest insere uma solicitação PENDING. Devolve
	// ErrAlreadyRequested se já existir uma para (post, solicitante).
	CreateRequest(ctx context.Context, postID, requesterID uuid.UUID, message *string) (models.VisitRequest, error)

	// ListByRequester lista as solicitações enviadas, mais recentes primeiro
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]models.MyVisitRequest, error)

	// ListByOwner lista as solicitações recebidas pelo dono, mais recentes primeiro
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.ReceivedVisitRequest, error)

	// DecideRequest aplica a transição PENDING -> status em uma única
	// operação condicional. Devolve ErrNotDecidable quando nenhuma linha
	// é afetada (não é o dono, não existe ou já foi decidida).
	DecideRequest(ctx context.Context, requestID, ownerID uuid.UUID, status string) (models.VisitDecision, error)

	// ApprovedContact devolve o whatsapp do dono do anúncio se existir
	// solicitação aprovada do solicitante, senão ErrContactNotReleased.
	ApprovedContact(ctx context.Context, postID, requesterID uuid.UUID) (string, error)
}

// Workflow implementa o ciclo de vida das solicitações de visita:
// criadas PENDING pelo interessado, decididas uma única vez pelo dono
// (APPROVED ou REJECTED, ambos terminais).
type Workflow struct {
	store Store
}

// NewWorkflow cria um novo Workflow sobre o Store informado
func NewWorkflow(store Store) *Workflow {
	return &Workflow{store: store}
}

// Create registra uma nova solicitação de visita em estado PENDING
func (w *Workflow) Create(ctx context.Context, postID, requesterID uuid.UUID, message string) (models.VisitRequest, error) {
	post, err := w.store.GetPost(ctx, postID)
	if err != nil {
		return models.VisitRequest{}, err
	}

	if post.Status != models.PostStatusActive {
		return models.VisitRequest{}, ErrPostNotActive
	}

	// O dono não pode solicitar visita no próprio anúncio
	if post.OwnerID == requesterID {
		return models.VisitRequest{}, ErrOwnPost
	}

	// Mensagem vazia é normalizada para NULL
	var msg *string
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		msg = &trimmed
	}

	return w.store.CreateRequest(ctx, postID, requesterID, msg)
}

// ListMine devolve as solicitações enviadas pelo usuário
func (w *Workflow) ListMine(ctx context.Context, requesterID uuid.UUID) ([]models.MyVisitRequest, error) {
	return w.store.ListByRequester(ctx, requesterID)
}

// ListReceived devolve as solicitações recebidas nos anúncios do usuário
func (w *Workflow) ListReceived(ctx context.Context, ownerID uuid.UUID) ([]models.ReceivedVisitRequest, error) {
	return w.store.ListByOwner(ctx, ownerID)
}

// Decide aplica APPROVED ou REJECTED a uma solicitação PENDING.
// A checagem de estado e a mutação acontecem na mesma operação
// condicional: de duas decisões concorrentes, exatamente uma vence.
func (w *Workflow) Decide(ctx context.Context, requestID, deciderID uuid.UUID, status string) (models.VisitDecision, error) {
	if status != models.VisitStatusApproved && status != models.VisitStatusRejected {
		return models.VisitDecision{}, ErrInvalidDecision
	}

	return w.store.DecideRequest(ctx, requestID, deciderID, status)
}

// Contact devolve o contato do dono apenas se houver solicitação
// aprovada do solicitante para o anúncio
func (w *Workflow) Contact(ctx context.Context, postID, requesterID uuid.UUID) (string, error) {
	return w.store.ApprovedContact(ctx, postID, requesterID)
}
