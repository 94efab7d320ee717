package models

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de anúncio
const (
	PostTypeAdoption  = "ADOPTION"
	PostTypeFoundLost = "FOUND_LOST"
)

// Status do ciclo de vida de um anúncio
const (
	PostStatusActive   = "ACTIVE"
	PostStatusResolved = "RESOLVED"
)

// PetPost representa um anúncio de adoção ou de pet achado/perdido
type PetPost struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Species        string     `json:"species"` // DOG, CAT
	Name           *string    `json:"name"`
	Color          string     `json:"color"`
	AgeMonths      int        `json:"age_months"`
	WeightKg       float64    `json:"weight_kg"`
	Sex            string     `json:"sex"`  // M, F, UNKNOWN
	Size           *string    `json:"size"` // SMALL, MEDIUM, LARGE
	NeighborhoodID uuid.UUID  `json:"neighborhood_id"`
	Neighborhood   string     `json:"neighborhood,omitempty"`
	Description    string     `json:"description"`
	EventDate      *time.Time `json:"event_date"`
	CoverPhotoID   *uuid.UUID `json:"cover_photo_id,omitempty"`
	Photos         []PetPhoto `json:"photos,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PetPhoto representa uma foto de um anúncio
type PetPhoto struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Neighborhood representa um bairro cadastrado
type Neighborhood struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
