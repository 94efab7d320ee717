package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/services/auth"
	"github.com/adotapet/adotapet-api/internal/services/favorite"
	"github.com/adotapet/adotapet-api/internal/services/neighborhood"
	"github.com/adotapet/adotapet-api/internal/services/photo"
	"github.com/adotapet/adotapet-api/internal/services/post"
	"github.com/adotapet/adotapet-api/internal/services/visit"
)

func main() {
	// Carrega a configuração
	cfg := config.LoadConfig()

	// Inicializa o banco de dados
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Erro ao inicializar o banco de dados: %v", err)
	}
	defer db.CloseDB()

	// Cria a instância do Fiber
	app := fiber.New(fiber.Config{
		AppName:      "AdotaPet API",
		ErrorHandler: errorHandler,
	})

	// Middleware globais
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))

	// Cria os serviços
	authService := auth.NewAuthService(cfg)
	postService := post.NewPostService(cfg)
	visitService := visit.NewVisitService(cfg)
	favoriteService := favorite.NewFavoriteService(cfg)
	neighborhoodService := neighborhood.NewNeighborhoodService(cfg)

	photoService, err := photo.NewPhotoService(cfg)
	if err != nil {
		log.Fatalf("❌ Erro ao inicializar o serviço de fotos: %v", err)
	}

	// Registra as rotas
	authService.SetupRoutes(app)
	postService.SetupRoutes(app)
	visitService.SetupRoutes(app)
	favoriteService.SetupRoutes(app)
	neighborhoodService.SetupRoutes(app)
	photoService.SetupRoutes(app)

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "project": "AdotaPet API"})
	})

	// Inicia o servidor
	log.Printf("✅ AdotaPet API rodando na porta %s", cfg.Port)
	log.Fatal(app.Listen(fmt.Sprintf(":%s", cfg.Port)))
}

// errorHandler trata erros não capturados do Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
