package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool representa o pool de conexões com o banco de dados
var Pool *pgxpool.Pool

// InitDB inicializa a conexão com o banco de dados
func InitDB(cfg *config.Config) error {
	var err error

	// Contexto com timeout para a conexão inicial
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("erro ao interpretar a URL do banco de dados: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	Pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("erro ao criar o pool de conexões: %w", err)
	}

	// Verificamos a conexão
	if err = Pool.Ping(ctx); err != nil {
		return fmt.Errorf("erro ao verificar a conexão: %w", err)
	}

	log.Println("✅ Conexão com o banco de dados estabelecida")
	return nil
}

// CloseDB encerra a conexão com o banco de dados
func CloseDB() {
	if Pool != nil {
		Pool.Close()
	}
}

// GetContext retorna um contexto com timeout para consultas ao banco
func GetContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
