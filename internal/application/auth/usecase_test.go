package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cs-portfolio/internal/application/auth"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "cs-portfolio"}

func TestLogin_PasswordEnClaro(t *testing.T) {
	uc, err := auth.NewAuthUseCase(auth.Credentials{Username: "cs", Password: "hemmelig"}, jwtCfg)
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "cs", Password: "hemmelig"})
	require.NoError(t, err)

	subject, sid, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "cs", subject)
	assert.NotEmpty(t, sid)
	assert.False(t, out.ExpiresAt.IsZero())
}

func TestLogin_CadaLoginEsUnaSesionNueva(t *testing.T) {
	uc, err := auth.NewAuthUseCase(auth.Credentials{Username: "cs", Password: "hemmelig"}, jwtCfg)
	require.NoError(t, err)

	a, err := uc.Login(dto.LoginRequest{Username: "cs", Password: "hemmelig"})
	require.NoError(t, err)
	b, err := uc.Login(dto.LoginRequest{Username: "cs", Password: "hemmelig"})
	require.NoError(t, err)

	_, sidA, _ := jwt.Parse(jwtCfg.Secret, a.Token)
	_, sidB, _ := jwt.Parse(jwtCfg.Secret, b.Token)
	assert.NotEqual(t, sidA, sidB)
}

func TestLogin_CredencialIncorrecta(t *testing.T) {
	uc, err := auth.NewAuthUseCase(auth.Credentials{Username: "cs", Password: "hemmelig"}, jwtCfg)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "cs", Password: "forkert"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "admin", Password: "hemmelig"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_HashBcryptConfigurado(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hemmelig"), bcrypt.MinCost)
	require.NoError(t, err)

	uc, err := auth.NewAuthUseCase(auth.Credentials{Username: "cs", Password: "ignorado", PasswordHash: string(hash)}, jwtCfg)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "cs", Password: "hemmelig"})
	assert.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Username: "cs", Password: "ignorado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewAuthUseCase_ConfiguracionInvalida(t *testing.T) {
	_, err := auth.NewAuthUseCase(auth.Credentials{Username: "cs"}, jwtCfg)
	assert.Error(t, err)

	_, err = auth.NewAuthUseCase(auth.Credentials{Username: "cs", PasswordHash: "no-es-bcrypt"}, jwtCfg)
	assert.Error(t, err)
}
