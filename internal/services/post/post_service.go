package post

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
	"github.com/adotapet/adotapet-api/internal/utils"
)

// PostService representa o serviço de anúncios de pets
type PostService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
}

// NewPostService cria uma nova instância de PostService
func NewPostService(cfg *config.Config) *PostService {
	return &PostService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// postColumns são as colunas devolvidas nas consultas de anúncios
const postColumns = `
	p.id, p.type, p.status, p.species, p.name, p.color,
	p.age_months, p.weight_kg, p.sex, p.size,
	p.description, p.event_date, p.created_at, p.updated_at,
	n.name AS neighborhood,
	p.neighborhood_id`

// scanPost lê uma linha de anúncio na ordem de postColumns
func scanPost(row pgx.Row, post *models.PetPost) error {
	return row.Scan(
		&post.ID,
		&post.Type,
		&post.Status,
		&post.Species,
		&post.Name,
		&post.Color,
		&post.AgeMonths,
		&post.WeightKg,
		&post.Sex,
		&post.Size,
		&post.Description,
		&post.EventDate,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Neighborhood,
		&post.NeighborhoodID,
	)
}

// CreatePost cria um novo anúncio (status inicial ACTIVE)
func (s *PostService) CreatePost(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	var payload createPostPayload
	if err := c.Bind().Body(&payload); err != nil {
		log.Printf("Erro ao decodificar o corpo da requisição: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if msg := validateCreatePost(&payload); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	neighborhoodID, err := uuid.Parse(payload.NeighborhoodID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bairro inválido (neighborhoodId não encontrado)"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Valida que o bairro existe
	var nbExists bool
	err = db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM neighborhoods WHERE id = $1)
	`, neighborhoodID).Scan(&nbExists)

	if err != nil {
		log.Printf("Erro ao verificar bairro: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao verificar bairro"})
	}

	if !nbExists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bairro inválido (neighborhoodId não encontrado)"})
	}

	// Nome vazio vira NULL
	var name *string
	if trimmed := strings.TrimSpace(payload.Name); trimmed != "" {
		name = &trimmed
	}

	var size *string
	if payload.Size != "" {
		size = &payload.Size
	}

	var eventDate *time.Time
	if strings.TrimSpace(payload.EventDate) != "" {
		parsed, _ := time.Parse("2006-01-02", payload.EventDate)
		eventDate = &parsed
	}

	var post models.PetPost
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO pet_posts
			(id, owner_id, type, status, species, name, color, age_months, weight_kg, sex, size, neighborhood_id, description, event_date)
		VALUES
			($1, $2, $3, 'ACTIVE', $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, owner_id, type, status, species, name, color, age_months, weight_kg, sex, size, neighborhood_id, description, event_date, created_at, updated_at
	`, uuid.New(), ownerID, payload.Type, payload.Species, name, payload.Color,
		*payload.AgeMonths, *payload.WeightKg, payload.Sex, size, neighborhoodID,
		payload.Description, eventDate).Scan(
		&post.ID,
		&post.OwnerID,
		&post.Type,
		&post.Status,
		&post.Species,
		&post.Name,
		&post.Color,
		&post.AgeMonths,
		&post.WeightKg,
		&post.Sex,
		&post.Size,
		&post.NeighborhoodID,
		&post.Description,
		&post.EventDate,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		log.Printf("Erro ao inserir anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao salvar anúncio"})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts lista os anúncios ativos com filtros opcionais (público)
func (s *PostService) ListPosts(c fiber.Ctx) error {
	filter := ListFilter{
		Type:           c.Query("type"),
		NeighborhoodID: c.Query("neighborhoodId"),
		Color:          c.Query("color"),
	}

	// Números inválidos são ignorados, como filtros ausentes
	if v, err := strconv.Atoi(c.Query("ageMin")); err == nil {
		filter.AgeMin = &v
	}
	if v, err := strconv.Atoi(c.Query("ageMax")); err == nil {
		filter.AgeMax = &v
	}
	if v, err := strconv.ParseFloat(c.Query("weightMin"), 64); err == nil {
		filter.WeightMin = &v
	}
	if v, err := strconv.ParseFloat(c.Query("weightMax"), 64); err == nil {
		filter.WeightMax = &v
	}

	query, args := filter.BuildQuery()

	ctx, cancel := db.GetContext()
	defer cancel()

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Erro ao consultar anúncios: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar anúncios"})
	}
	defer rows.Close()

	posts := make([]models.PetPost, 0)
	for rows.Next() {
		var post models.PetPost
		if err := scanPost(rows, &post); err != nil {
			log.Printf("Erro ao ler anúncio: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	return c.JSON(posts)
}

// GetPostByID devolve um anúncio com suas fotos (público)
func (s *PostService) GetPostByID(c fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var post models.PetPost
	err = db.Pool.QueryRow(ctx, `
		SELECT
			p.id, p.owner_id, p.type, p.status, p.species, p.name, p.color,
			p.age_months, p.weight_kg, p.sex, p.size,
			p.description, p.event_date, p.cover_photo_id, p.created_at, p.updated_at,
			n.name AS neighborhood,
			p.neighborhood_id
		FROM pet_posts p
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE p.id = $1
	`, postID).Scan(
		&post.ID,
		&post.OwnerID,
		&post.Type,
		&post.Status,
		&post.Species,
		&post.Name,
		&post.Color,
		&post.AgeMonths,
		&post.WeightKg,
		&post.Sex,
		&post.Size,
		&post.Description,
		&post.EventDate,
		&post.CoverPhotoID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Neighborhood,
		&post.NeighborhoodID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Anúncio não encontrado"})
		}
		log.Printf("Erro ao consultar anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao consultar anúncio"})
	}

	// Fotos do anúncio
	photoRows, err := db.Pool.Query(ctx, `
		SELECT id, post_id, url, created_at
		FROM pet_photos
		WHERE post_id = $1
		ORDER BY created_at ASC
	`, postID)

	if err != nil {
		log.Printf("Erro ao consultar fotos: %v", err)
	} else {
		defer photoRows.Close()

		photos := make([]models.PetPhoto, 0)
		for photoRows.Next() {
			var photo models.PetPhoto
			if err := photoRows.Scan(&photo.ID, &photo.PostID, &photo.URL, &photo.CreatedAt); err != nil {
				log.Printf("Erro ao ler foto: %v", err)
				continue
			}
			photos = append(photos, photo)
		}
		post.Photos = photos
	}

	return c.JSON(post)
}

// ListMyPosts lista os anúncios do usuário autenticado
func (s *PostService) ListMyPosts(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	rows, err := db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM pet_posts p
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC
	`, postColumns), ownerID)

	if err != nil {
		log.Printf("Erro ao consultar anúncios do usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao listar anúncios"})
	}
	defer rows.Close()

	posts := make([]models.PetPost, 0)
	for rows.Next() {
		var post models.PetPost
		if err := scanPost(rows, &post); err != nil {
			log.Printf("Erro ao ler anúncio: %v", err)
			continue
		}
		post.OwnerID = ownerID
		posts = append(posts, post)
	}

	return c.JSON(posts)
}

// UpdatePost atualiza parcialmente um anúncio (somente o dono)
func (s *PostService) UpdatePost(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	var payload updatePostPayload
	if err := c.Bind().Body(&payload); err != nil {
		log.Printf("Erro ao decodificar o corpo da requisição: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if msg := validateUpdatePost(&payload); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Confere se é o dono
	var currentType string
	var existingEventDate *time.Time
	err = db.Pool.QueryRow(ctx, `
		SELECT type, event_date FROM pet_posts WHERE id = $1 AND owner_id = $2
	`, postID, ownerID).Scan(&currentType, &existingEventDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Você não tem permissão para editar este anúncio"})
		}
		log.Printf("Erro ao consultar anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao consultar anúncio"})
	}

	// Se o tipo resultante for FOUND_LOST, event_date precisa existir
	newType := currentType
	if payload.Type != nil {
		newType = *payload.Type
	}
	eventDateProvided := payload.EventDate != nil && strings.TrimSpace(*payload.EventDate) != ""
	if newType == "FOUND_LOST" && !eventDateProvided && existingEventDate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "eventDate é obrigatório para FOUND_LOST"})
	}

	// neighborhoodId informado precisa existir
	if payload.NeighborhoodID != nil {
		nbID, err := uuid.Parse(*payload.NeighborhoodID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bairro inválido (neighborhoodId não encontrado)"})
		}

		var nbExists bool
		err = db.Pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM neighborhoods WHERE id = $1)
		`, nbID).Scan(&nbExists)

		if err != nil {
			log.Printf("Erro ao verificar bairro: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao verificar bairro"})
		}

		if !nbExists {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bairro inválido (neighborhoodId não encontrado)"})
		}
	}

	// Monta o UPDATE dinâmico apenas com os campos enviados
	fields := make([]string, 0)
	args := make([]any, 0)
	i := 1

	appendField := func(col string, value any) {
		fields = append(fields, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, value)
		i++
	}

	if payload.Type != nil {
		appendField("type", *payload.Type)
	}
	if payload.Species != nil {
		appendField("species", *payload.Species)
	}
	if payload.Name != nil {
		// Nome vazio vira NULL
		if trimmed := strings.TrimSpace(*payload.Name); trimmed == "" {
			appendField("name", nil)
		} else {
			appendField("name", trimmed)
		}
	}
	if payload.Color != nil {
		appendField("color", *payload.Color)
	}
	if payload.AgeMonths != nil {
		appendField("age_months", *payload.AgeMonths)
	}
	if payload.WeightKg != nil {
		appendField("weight_kg", *payload.WeightKg)
	}
	if payload.Sex != nil {
		appendField("sex", *payload.Sex)
	}
	if payload.Size != nil {
		if *payload.Size == "" {
			appendField("size", nil)
		} else {
			appendField("size", *payload.Size)
		}
	}
	if payload.Description != nil {
		appendField("description", *payload.Description)
	}
	if payload.EventDate != nil {
		if strings.TrimSpace(*payload.EventDate) == "" {
			appendField("event_date", nil)
		} else {
			parsed, _ := time.Parse("2006-01-02", *payload.EventDate)
			appendField("event_date", parsed)
		}
	}
	if payload.NeighborhoodID != nil {
		appendField("neighborhood_id", *payload.NeighborhoodID)
	}

	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nenhum campo enviado para atualização"})
	}

	args = append(args, postID, ownerID)

	query := fmt.Sprintf(`
		UPDATE pet_posts
		SET %s, updated_at = now()
		WHERE id = $%d AND owner_id = $%d
		RETURNING id, owner_id, type, status, species, name, color, age_months, weight_kg, sex, size, neighborhood_id, description, event_date, created_at, updated_at
	`, strings.Join(fields, ", "), i, i+1)

	var post models.PetPost
	err = db.Pool.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.OwnerID,
		&post.Type,
		&post.Status,
		&post.Species,
		&post.Name,
		&post.Color,
		&post.AgeMonths,
		&post.WeightKg,
		&post.Sex,
		&post.Size,
		&post.NeighborhoodID,
		&post.Description,
		&post.EventDate,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		log.Printf("Erro ao atualizar anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao atualizar anúncio"})
	}

	return c.JSON(post)
}

// SetPostStatus alterna o status do anúncio entre ACTIVE e RESOLVED (dono)
func (s *PostService) SetPostStatus(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	var requestData struct {
		Status string `json:"status"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if requestData.Status != models.PostStatusActive && requestData.Status != models.PostStatusResolved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status deve ser ACTIVE ou RESOLVED"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Condicional no dono: zero linhas responde como sem permissão
	var result struct {
		ID        uuid.UUID `json:"id"`
		Status    string    `json:"status"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	err = db.Pool.QueryRow(ctx, `
		UPDATE pet_posts
		SET status = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
		RETURNING id, status, updated_at
	`, requestData.Status, postID, ownerID).Scan(&result.ID, &result.Status, &result.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sem permissão ou anúncio não encontrado"})
		}
		log.Printf("Erro ao atualizar status do anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao atualizar anúncio"})
	}

	return c.JSON(result)
}
