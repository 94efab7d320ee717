package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config estrutura de configuração da aplicação
type Config struct {
	Port             string
	JWTSecret        string
	DatabaseURL      string
	DatabaseConfig   DatabaseConfig
	CloudinaryConfig CloudinaryConfig
	SMTPConfig       SMTPConfig
	FrontendURL      string
	AppEnv           string
}

// DatabaseConfig contém a configuração do banco de dados
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// CloudinaryConfig contém a configuração do Cloudinary
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// SMTPConfig contém a configuração de envio de e-mails.
// Quando Host está vazio, o mailer apenas registra o link no log.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// LoadConfig carrega as variáveis do .env
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "adotapet_user"),
		Password: getEnv("PGPASSWORD", "adotapet_pass"),
		Name:     getEnv("PGDATABASE", "adotapet"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	// Montamos a string de conexão com o banco de dados
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode)

	cloudinaryConfig := CloudinaryConfig{
		CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "adotapet"),
	}

	smtpConfig := SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     getEnv("SMTP_FROM", ""),
	}

	cfg := &Config{
		Port:             getEnv("PORT", "3001"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		DatabaseURL:      dbURL,
		DatabaseConfig:   dbConfig,
		CloudinaryConfig: cloudinaryConfig,
		SMTPConfig:       smtpConfig,
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		AppEnv:           getEnv("APP_ENV", "production"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("❌ Erro: JWT_SECRET não definido")
	}

	return cfg
}

// getEnv obtém a variável de ambiente ou usa o valor padrão
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
