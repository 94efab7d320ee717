package models

import (
	"time"

	"github.com/google/uuid"
)

// Status de uma solicitação de visita.
// PENDING é o estado inicial; APPROVED e REJECTED são terminais.
const (
	VisitStatusPending  = "PENDING"
	VisitStatusApproved = "APPROVED"
	VisitStatusRejected = "REJECTED"
)

// VisitRequest representa uma solicitação de visita a um anúncio
type VisitRequest struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Message     *string   `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MyVisitRequest é uma solicitação enviada, enriquecida com dados do anúncio
type MyVisitRequest struct {
	VisitRequest
	PostType     string  `json:"type"`
	Species      string  `json:"species"`
	PetName      *string `json:"name"`
	Color        string  `json:"color"`
	AgeMonths    int     `json:"age_months"`
	WeightKg     float64 `json:"weight_kg"`
	Neighborhood string  `json:"neighborhood"`
}

// ReceivedVisitRequest é uma solicitação recebida pelo dono do anúncio,
// enriquecida com dados do solicitante e do anúncio
type ReceivedVisitRequest struct {
	VisitRequest
	RequesterName  string  `json:"requester_name"`
	RequesterEmail string  `json:"requester_email"`
	PostType       string  `json:"type"`
	Species        string  `json:"species"`
	PetName        *string `json:"pet_name"`
	Color          string  `json:"color"`
	AgeMonths      int     `json:"age_months"`
	WeightKg       float64 `json:"weight_kg"`
	Neighborhood   string  `json:"neighborhood"`
}

// VisitDecision é o resultado da aprovação/rejeição de uma solicitação
type VisitDecision struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}
