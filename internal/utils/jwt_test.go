package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractUserID(t *testing.T) {
	svc := NewJWTService("segredo-de-teste")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	extracted, err := svc.ExtractUserID(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), extracted)
}

func TestExtractUserID_WrongSecret(t *testing.T) {
	token, err := NewJWTService("segredo-a").GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("segredo-b").ExtractUserID(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractUserID_Garbage(t *testing.T) {
	svc := NewJWTService("segredo-de-teste")

	_, err := svc.ExtractUserID("nem-de-longe-um-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ExtractUserID("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractUserID_Expired(t *testing.T) {
	secret := "segredo-de-teste"
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"email":   "a@example.com",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret).ExtractUserID(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractUserID_RejectsNonHMAC(t *testing.T) {
	// alg "none" não passa na checagem de método de assinatura
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.New().String(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("segredo-de-teste").ExtractUserID(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
