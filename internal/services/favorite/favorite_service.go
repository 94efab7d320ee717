package favorite

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
	"github.com/adotapet/adotapet-api/internal/utils"
)

// Código de violação de chave estrangeira no Postgres
const fkViolation = "23503"

// FavoriteService trata a lista de favoritos do usuário
type FavoriteService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewFavoriteService cria uma nova instância de FavoriteService
func NewFavoriteService(cfg *config.Config) *FavoriteService {
	return &FavoriteService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// AddFavorite adiciona um anúncio aos favoritos (idempotente)
func (s *FavoriteService) AddFavorite(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Repetir o favorito não é erro
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO favorites (id, user_id, post_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, uuid.New(), userID, postID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Anúncio não encontrado"})
		}
		log.Printf("Erro ao favoritar anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao favoritar anúncio"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"favorited": true}})
}

// RemoveFavorite remove um anúncio dos favoritos (idempotente)
func (s *FavoriteService) RemoveFavorite(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	_, err = db.Pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND post_id = $2
	`, userID, postID)

	if err != nil {
		log.Printf("Erro ao remover favorito: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao remover favorito"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"favorited": false}})
}

// GetFavoriteIDs retorna só os IDs dos anúncios favoritados
func (s *FavoriteService) GetFavoriteIDs(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT post_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)

	if err != nil {
		log.Printf("Erro ao buscar favoritos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Printf("Erro ao ler favorito: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
		}
		ids = append(ids, id)
	}

	return c.JSON(fiber.Map{"data": ids})
}

// GetFavorites retorna os anúncios favoritados com fotos
func (s *FavoriteService) GetFavorites(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.type, p.status, p.name, p.species, p.sex, p.size,
		       p.color, p.age_months, p.weight_kg, p.description, p.event_date,
		       p.neighborhood_id, n.name, p.cover_photo_id, p.created_at, p.updated_at
		FROM favorites f
		JOIN pet_posts p ON p.id = f.post_id
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)

	if err != nil {
		log.Printf("Erro ao buscar favoritos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
	}
	defer rows.Close()

	posts := make([]models.PetPost, 0)
	for rows.Next() {
		var p models.PetPost
		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Type, &p.Status, &p.Name, &p.Species, &p.Sex, &p.Size,
			&p.Color, &p.AgeMonths, &p.WeightKg, &p.Description, &p.EventDate,
			&p.NeighborhoodID, &p.Neighborhood, &p.CoverPhotoID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			log.Printf("Erro ao ler favorito: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
		}
		posts = append(posts, p)
	}

	// Carrega as fotos de cada anúncio
	for i := range posts {
		photoRows, err := db.Pool.Query(ctx, `
			SELECT id, post_id, url, created_at
			FROM pet_photos
			WHERE post_id = $1
			ORDER BY created_at ASC
		`, posts[i].ID)

		if err != nil {
			log.Printf("Erro ao buscar fotos: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
		}

		photos := make([]models.PetPhoto, 0)
		for photoRows.Next() {
			var ph models.PetPhoto
			if err := photoRows.Scan(&ph.ID, &ph.PostID, &ph.URL, &ph.CreatedAt); err != nil {
				photoRows.Close()
				log.Printf("Erro ao ler foto: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar favoritos"})
			}
			photos = append(photos, ph)
		}
		photoRows.Close()
		posts[i].Photos = photos
	}

	return c.JSON(fiber.Map{"data": posts})
}
