package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gofit/internal/domain"
	"gofit/internal/pkg/token"
)

// TestGerarEValidarToken testa o ciclo completo de emissão e validação.
func TestGerarEValidarToken(t *testing.T) {
	svc := token.NewService("chave-de-teste", time.Hour)

	user := domain.User{
		ID:    "user-123",
		Name:  "Maria Souza",
		Email: "maria@academia.com",
		Role:  domain.RoleAdmin,
	}

	tokenString, err := svc.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "GoFit-API", claims.Issuer)
}

// TestValidarToken_AssinaturaInvalida garante que token assinado com outra
// chave é rejeitado.
func TestValidarToken_AssinaturaInvalida(t *testing.T) {
	svc := token.NewService("chave-de-teste", time.Hour)
	other := token.NewService("outra-chave", time.Hour)

	tokenString, err := other.GenerateToken(domain.User{ID: "user-123"})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

// TestValidarToken_Expirado garante que token vencido é rejeitado.
func TestValidarToken_Expirado(t *testing.T) {
	svc := token.NewService("chave-de-teste", -time.Minute)

	tokenString, err := svc.GenerateToken(domain.User{ID: "user-123"})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}
