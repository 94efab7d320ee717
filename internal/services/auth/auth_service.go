package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adotapet/adotapet-api/internal/config"
	"github.com/adotapet/adotapet-api/internal/db"
	"github.com/adotapet/adotapet-api/internal/models"
	"github.com/adotapet/adotapet-api/internal/services/mailer"
	"github.com/adotapet/adotapet-api/internal/utils"
)

// bcryptCost é o custo do hash de senha
const bcryptCost = 10

// resetTokenTTL é a validade do token de redefinição de senha
const resetTokenTTL = time.Hour

// AuthService trata registro, login e fluxos de senha
type AuthService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	mailer     *mailer.Mailer
}

// NewAuthService cria uma nova instância de AuthService
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
		mailer:     mailer.New(cfg.SMTPConfig),
	}
}

// GetJWTService expõe o serviço de JWT para os middlewares
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

// Register cria uma nova conta de usuário
func (s *AuthService) Register(c fiber.Ctx) error {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Whatsapp string `json:"whatsapp"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if len(payload.Name) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name deve ter pelo menos 2 caracteres"})
	}
	if _, err := mail.ParseAddress(payload.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email inválido"})
	}
	if len(payload.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password deve ter pelo menos 6 caracteres"})
	}
	if len(strings.TrimSpace(payload.Whatsapp)) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "whatsapp inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, payload.Email).Scan(&exists)

	if err != nil {
		log.Printf("Erro ao verificar e-mail: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao registrar usuário"})
	}

	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "E-mail já cadastrado"})
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		log.Printf("Erro ao gerar hash de senha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao registrar usuário"})
	}

	var user models.PublicUser
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, whatsapp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, whatsapp, avatar_url
	`, uuid.New(), payload.Name, payload.Email, string(passwordHash), payload.Whatsapp).Scan(
		&user.ID, &user.Name, &user.Email, &user.Whatsapp, &user.AvatarURL,
	)

	if err != nil {
		log.Printf("Erro ao criar usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao registrar usuário"})
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Erro ao gerar token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao gerar token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login autentica o usuário por e-mail e senha
func (s *AuthService) Login(c fiber.Ctx) error {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	ctx, cancel := db.GetContext()
	defer cancel()

	var user models.PublicUser
	var passwordHash string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, email, whatsapp, avatar_url, password_hash
		FROM users
		WHERE email = $1
	`, payload.Email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Whatsapp, &user.AvatarURL, &passwordHash,
	)

	// E-mail inexistente e senha errada respondem igual
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Usuário ou senha inválidos"})
		}
		log.Printf("Erro ao consultar usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao autenticar"})
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(payload.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Usuário ou senha inválidos"})
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Erro ao gerar token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao gerar token"})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me devolve os dados do usuário autenticado
func (s *AuthService) Me(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var user models.PublicUser
	err = db.Pool.QueryRow(ctx, `
		SELECT id, name, email, whatsapp, avatar_url
		FROM users
		WHERE id = $1
	`, userID).Scan(&user.ID, &user.Name, &user.Email, &user.Whatsapp, &user.AvatarURL)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
		}
		log.Printf("Erro ao consultar usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao consultar usuário"})
	}

	return c.JSON(user)
}

// ChangePassword troca a senha do usuário logado
func (s *AuthService) ChangePassword(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("userID").(string))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuário inválido"})
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if len(payload.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "newPassword deve ter pelo menos 6 caracteres"})
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var passwordHash string
	err = db.Pool.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id = $1
	`, userID).Scan(&passwordHash)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
		}
		log.Printf("Erro ao consultar usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao trocar senha"})
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(payload.CurrentPassword)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Senha atual incorreta"})
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcryptCost)
	if err != nil {
		log.Printf("Erro ao gerar hash de senha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao trocar senha"})
	}

	_, err = db.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, string(newHash), userID)

	if err != nil {
		log.Printf("Erro ao atualizar senha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao trocar senha"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Senha alterada com sucesso"}})
}

// ForgotPassword inicia o fluxo de redefinição de senha por e-mail.
// A resposta é neutra: não revela se o e-mail está cadastrado.
func (s *AuthService) ForgotPassword(c fiber.Ctx) error {
	var payload struct {
		Email string `json:"email"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	okResponse := fiber.Map{
		"data": fiber.Map{
			"message": "Se este e-mail estiver cadastrado, enviaremos instruções para redefinir sua senha.",
		},
	}

	ctx, cancel := db.GetContext()
	defer cancel()

	var userID uuid.UUID
	var name, email string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, email FROM users WHERE email = $1
	`, payload.Email).Scan(&userID, &name, &email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(okResponse)
		}
		log.Printf("Erro ao consultar usuário: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar solicitação"})
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		log.Printf("Erro ao gerar token de redefinição: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar solicitação"})
	}

	// Invalida tokens anteriores ainda não usados
	_, err = db.Pool.Exec(ctx, `
		UPDATE password_reset_tokens
		SET used_at = now()
		WHERE user_id = $1 AND used_at IS NULL
	`, userID)

	if err != nil {
		log.Printf("Erro ao invalidar tokens anteriores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar solicitação"})
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), userID, tokenHash, time.Now().Add(resetTokenTTL))

	if err != nil {
		log.Printf("Erro ao salvar token de redefinição: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao processar solicitação"})
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, token)

	if err := s.mailer.SendPasswordReset(email, name, resetURL); err != nil {
		// A resposta continua neutra mesmo se o envio falhar
		log.Printf("Erro ao enviar e-mail de redefinição: %v", err)
	}

	return c.JSON(okResponse)
}

// ResetPassword aplica a redefinição usando o token recebido por e-mail
func (s *AuthService) ResetPassword(c fiber.Ctx) error {
	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de dados inválido"})
	}

	if len(payload.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "newPassword deve ter pelo menos 6 caracteres"})
	}

	tokenHash := hashResetToken(payload.Token)

	ctx, cancel := db.GetContext()
	defer cancel()

	var prt models.PasswordResetToken
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, expires_at, used_at
		FROM password_reset_tokens
		WHERE token_hash = $1
		LIMIT 1
	`, tokenHash).Scan(&prt.ID, &prt.UserID, &prt.ExpiresAt, &prt.UsedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token inválido ou expirado"})
		}
		log.Printf("Erro ao consultar token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao redefinir senha"})
	}

	if prt.UsedAt != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token já utilizado"})
	}

	if prt.ExpiresAt.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token expirado"})
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcryptCost)
	if err != nil {
		log.Printf("Erro ao gerar hash de senha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao redefinir senha"})
	}

	_, err = db.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, string(newHash), prt.UserID)

	if err != nil {
		log.Printf("Erro ao atualizar senha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao redefinir senha"})
	}

	_, err = db.Pool.Exec(ctx, `
		UPDATE password_reset_tokens SET used_at = now() WHERE id = $1
	`, prt.ID)

	if err != nil {
		log.Printf("Erro ao marcar token como usado: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao redefinir senha"})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Senha redefinida com sucesso"}})
}

// newResetToken gera o token aleatório e o hash persistido
func newResetToken() (token, tokenHash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}

	token = hex.EncodeToString(raw)
	return token, hashResetToken(token), nil
}

// hashResetToken devolve o SHA-256 do token em hexadecimal
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
