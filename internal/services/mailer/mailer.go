package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/adotapet/adotapet-api/internal/config"
)

// Mailer envia e-mails transacionais via SMTP.
// Sem SMTP_HOST configurado, o link é apenas registrado no log —
// útil em desenvolvimento local.
type Mailer struct {
	cfg config.SMTPConfig
}

// New cria um novo Mailer
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendPasswordReset envia o e-mail de redefinição de senha
func (m *Mailer) SendPasswordReset(to, name, resetURL string) error {
	if m.cfg.Host == "" {
		log.Printf("[RESET PASSWORD] SMTP não configurado. Link: %s", resetURL)
		return nil
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	subject := "AdotaPet — Redefinição de senha"

	htmlBody := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.4;">
			<h2>Redefinição de senha</h2>
			<p>Olá %s!</p>
			<p>Recebemos uma solicitação para redefinir sua senha.</p>
			<p><a href="%s" target="_blank" rel="noreferrer">Clique aqui para criar uma nova senha</a></p>
			<p style="color:#666">Se você não solicitou isso, ignore este e-mail.</p>
		</div>`, name, resetURL)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: AdotaPet <%s>\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("erro ao enviar e-mail de redefinição: %w", err)
	}

	return nil
}
