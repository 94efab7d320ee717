package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adotapet/adotapet-api/internal/config"
)

func TestSendPasswordReset_NoSMTPConfigured(t *testing.T) {
	m := New(config.SMTPConfig{})

	// Sem SMTP_HOST o envio vira log e não falha
	err := m.SendPasswordReset("alice@example.com", "Alice", "http://localhost:5173/reset-password?token=abc")
	assert.NoError(t, err)
}
