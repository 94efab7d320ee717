package neighborhood

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
)

// NeighborhoodService expõe o catálogo de bairros
type NeighborhoodService struct {
	cfg *config.Config
}

// NewNeighborhoodService cria uma nova instância de NeighborhoodService
func NewNeighborhoodService(cfg *config.Config) *NeighborhoodService {
	return &NeighborhoodService{cfg: cfg}
}

// ListNeighborhoods retorna todos os bairros em ordem alfabética
func (s *NeighborhoodService) ListNeighborhoods(c fiber.Ctx) error {
	ctx, cancel := db.GetContext()
	defer cancel()

	rows, err := db.Pool.Query(ctx, `
		SELECT id, name FROM neighborhoods ORDER BY name ASC
	`)

	if err != nil {
		log.Printf("Erro ao buscar bairros: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar bairros"})
	}
	defer rows.Close()

	neighborhoods := make([]models.Neighborhood, 0)
	for rows.Next() {
		var n models.Neighborhood
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			log.Printf("Erro ao ler bairro: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao buscar bairros"})
		}
		neighborhoods = append(neighborhoods, n)
	}

	return c.JSON(neighborhoods)
}
