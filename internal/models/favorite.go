package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite representa um anúncio favoritado por um usuário
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
