package visit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
)

// uniqueViolation é o código SQLSTATE de violação de constraint UNIQUE
const uniqueViolation = "23505"

// PgStore implementa Store sobre o pool do Postgres
type PgStore struct{}

// NewPgStore cria um novo PgStore
func NewPgStore() *PgStore {
	return &PgStore{}
}

func (s *PgStore) GetPost(ctx context.Context, postID uuid.UUID) (PostRef, error) {
	var post PostRef

	err := db.Pool.QueryRow(ctx, `
		SELECT id, owner_id, status FROM pet_posts WHERE id = $1
	`, postID).Scan(&post.ID, &post.OwnerID, &post.Status)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PostRef{}, ErrPostNotFound
		}
		return PostRef{}, err
	}

	return post, nil
}

func (s *PgStore) CreateRequest(ctx context.Context, postID, requesterID uuid.UUID, message *string) (models.VisitRequest, error) {
	var vr models.VisitRequest

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO visit_requests (id, post_id, requester_id, message, status)
		VALUES ($1, $2, $3, $4, 'PENDING')
		RETURNING id, post_id, requester_id, message, status, created_at, updated_at
	`, uuid.New(), postID, requesterID, message).Scan(
		&vr.ID,
		&vr.PostID,
		&vr.RequesterID,
		&vr.Message,
		&vr.Status,
		&vr.CreatedAt,
		&vr.UpdatedAt,
	)

	if err != nil {
		// UNIQUE(post_id, requester_id) -> já solicitou antes
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.VisitRequest{}, ErrAlreadyRequested
		}
		return models.VisitRequest{}, err
	}

	return vr, nil
}

func (s *PgStore) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]models.MyVisitRequest, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			vr.id, vr.post_id, vr.requester_id, vr.message, vr.status, vr.created_at, vr.updated_at,
			p.type, p.species, p.name, p.color, p.age_months, p.weight_kg,
			n.name AS neighborhood
		FROM visit_requests vr
		JOIN pet_posts p ON p.id = vr.post_id
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE vr.requester_id = $1
		ORDER BY vr.created_at DESC
	`, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.MyVisitRequest, 0)
	for rows.Next() {
		var r models.MyVisitRequest
		if err := rows.Scan(
			&r.ID,
			&r.PostID,
			&r.RequesterID,
			&r.Message,
			&r.Status,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.PostType,
			&r.Species,
			&r.PetName,
			&r.Color,
			&r.AgeMonths,
			&r.WeightKg,
			&r.Neighborhood,
		); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}

	return requests, rows.Err()
}

func (s *PgStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.ReceivedVisitRequest, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			vr.id, vr.post_id, vr.requester_id, vr.message, vr.status, vr.created_at, vr.updated_at,
			u.name AS requester_name, u.email AS requester_email,
			p.type, p.species, p.name AS pet_name, p.color, p.age_months, p.weight_kg,
			n.name AS neighborhood
		FROM visit_requests vr
		JOIN pet_posts p ON p.id = vr.post_id
		JOIN users u ON u.id = vr.requester_id
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE p.owner_id = $1
		ORDER BY vr.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.ReceivedVisitRequest, 0)
	for rows.Next() {
		var r models.ReceivedVisitRequest
		if err := rows.Scan(
			&r.ID,
			&r.PostID,
			&r.RequesterID,
			&r.Message,
			&r.Status,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.RequesterName,
			&r.RequesterEmail,
			&r.PostType,
			&r.Species,
			&r.PetName,
			&r.Color,
			&r.AgeMonths,
			&r.WeightKg,
			&r.Neighborhood,
		); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}

	return requests, rows.Err()
}

func (s *PgStore) DecideRequest(ctx context.Context, requestID, ownerID uuid.UUID, status string) (models.VisitDecision, error) {
	var decision models.VisitDecision

	// Checagem de dono e de estado na mesma operação condicional:
	// duas decisões concorrentes nunca vencem ao mesmo tempo.
	err := db.Pool.QueryRow(ctx, `
		UPDATE visit_requests vr
		SET status = $1, updated_at = now()
		FROM pet_posts p
		WHERE vr.id = $2
		  AND p.id = vr.post_id
		  AND p.owner_id = $3
		  AND vr.status = 'PENDING'
		RETURNING vr.id, vr.post_id, vr.requester_id, vr.status, vr.updated_at
	`, status, requestID, ownerID).Scan(
		&decision.ID,
		&decision.PostID,
		&decision.RequesterID,
		&decision.Status,
		&decision.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.VisitDecision{}, ErrNotDecidable
		}
		return models.VisitDecision{}, err
	}

	return decision, nil
}

func (s *PgStore) ApprovedContact(ctx context.Context, postID, requesterID uuid.UUID) (string, error) {
	var whatsapp string

	err := db.Pool.QueryRow(ctx, `
		SELECT u.whatsapp
		FROM pet_posts p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
		  AND EXISTS (
			SELECT 1 FROM visit_requests vr
			WHERE vr.post_id = p.id
			  AND vr.requester_id = $2
			  AND vr.status = 'APPROVED'
		  )
	`, postID, requesterID).Scan(&whatsapp)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Anúncio inexistente e contato não liberado respondem igual
			return "", ErrContactNotReleased
		}
		return "", err
	}

	return whatsapp, nil
}
