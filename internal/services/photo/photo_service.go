package photo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
	"github.com/adotapet/adotapet-api/internal/utils"
)

// maxPhotosPerUpload limita a quantidade de fotos por requisição
const maxPhotosPerUpload = 6

// uploadTimeout é o tempo máximo de envio para o Cloudinary
const uploadTimeout = 30 * time.Second

// PhotoService trata o envio de fotos de anúncios e avatares
type PhotoService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	cld        *cloudinary.Cloudinary
}

// NewPhotoService cria uma nova instância de PhotoService
func NewPhotoService(cfg *config.Config) (*PhotoService, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryConfig.CloudName,
		cfg.CloudinaryConfig.APIKey,
		cfg.CloudinaryConfig.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao configurar Cloudinary: %w", err)
	}

	return &PhotoService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		cld:        cld,
	}, nil
}

// uploadFile envia um arquivo para a pasta indicada no Cloudinary
func (s *PhotoService) uploadFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       fmt.Sprintf("%s/%s", s.cfg.CloudinaryConfig.UploadFolder, folder),
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}

	return resp.SecureURL, nil
}

// UploadPostPhotos envia fotos para um anúncio (somente o dono)
func (s *PhotoService) UploadPostPhotos(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Arquivo não enviado (field: photos)"})
	}

	if len(files) > maxPhotosPerUpload {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Máximo de 6 fotos por envio"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Confere se o anúncio existe e pertence ao dono
	var exists bool
	err = db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM pet_posts WHERE id = $1 AND owner_id = $2)
	`, postID, ownerID).Scan(&exists)

	if err != nil {
		log.Printf("Erro ao verificar anúncio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao enviar fotos"})
	}

	if !exists {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sem permissão ou anúncio não encontrado"})
	}

	photos := make([]models.PetPhoto, 0, len(files))
	for _, fileHeader := range files {
		url, err := s.uploadFile(fileHeader, "posts")
		if err != nil {
			log.Printf("Erro ao enviar foto para o Cloudinary: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao enviar fotos"})
		}

		var photo models.PetPhoto
		err = db.Pool.QueryRow(ctx, `
			INSERT INTO pet_photos (id, post_id, url)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, url, created_at
		`, uuid.New(), postID, url).Scan(&photo.ID, &photo.PostID, &photo.URL, &photo.CreatedAt)

		if err != nil {
			log.Printf("Erro ao salvar foto: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao salvar fotos"})
		}

		photos = append(photos, photo)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": photos})
}

// SetPostCover define a foto de capa de um anúncio (somente o dono)
func (s *PhotoService) SetPostCover(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de anúncio inválido"})
	}

	var requestData struct {
		PhotoID string `json:"photoId"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	photoID, err := uuid.Parse(requestData.PhotoID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de foto inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Condicional no dono e na foto pertencer ao próprio anúncio
	var result struct {
		ID           uuid.UUID  `json:"id"`
		CoverPhotoID *uuid.UUID `json:"cover_photo_id"`
		UpdatedAt    time.Time  `json:"updated_at"`
	}

	err = db.Pool.QueryRow(ctx, `
		UPDATE pet_posts p
		SET cover_photo_id = ph.id, updated_at = now()
		FROM pet_photos ph
		WHERE p.id = $1
		  AND p.owner_id = $2
		  AND ph.id = $3
		  AND ph.post_id = p.id
		RETURNING p.id, p.cover_photo_id, p.updated_at
	`, postID, ownerID, photoID).Scan(&result.ID, &result.CoverPhotoID, &result.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sem permissão, anúncio ou foto não encontrados"})
		}
		log.Printf("Erro ao definir capa: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao definir capa"})
	}

	return c.JSON(fiber.Map{"data": result})
}

// DeletePostPhoto remove uma foto de um anúncio (somente o dono)
func (s *PhotoService) DeletePostPhoto(c fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de foto inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	// Confere se a foto pertence a um anúncio do dono
	var photoOwnerID uuid.UUID
	err = db.Pool.QueryRow(ctx, `
		SELECT p.owner_id
		FROM pet_photos ph
		JOIN pet_posts p ON p.id = ph.post_id
		WHERE ph.id = $1
	`, photoID).Scan(&photoOwnerID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Foto não encontrada"})
		}
		log.Printf("Erro ao consultar foto: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao remover foto"})
	}

	if photoOwnerID != ownerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Sem permissão para remover esta foto"})
	}

	// cover_photo_id referenciando a foto cai para NULL via FK
	_, err = db.Pool.Exec(ctx, `DELETE FROM pet_photos WHERE id = $1`, photoID)
	if err != nil {
		log.Printf("Erro ao remover foto: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao remover foto"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// UploadMyAvatar envia o avatar do usuário autenticado
func (s *PhotoService) UploadMyAvatar(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Arquivo não enviado (field: avatar)"})
	}

	url, err := s.uploadFile(fileHeader, "avatars")
	if err != nil {
		log.Printf("Erro ao enviar avatar para o Cloudinary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao enviar avatar"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var user models.PublicUser
	err = db.Pool.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, name, email, whatsapp, avatar_url
	`, url, userID).Scan(&user.ID, &user.Name, &user.Email, &user.Whatsapp, &user.AvatarURL)

	if err != nil {
		log.Printf("Erro ao atualizar avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao atualizar avatar"})
	}

	return c.JSON(user)
}
