package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials credencial compartida del equipo. PasswordHash (bcrypt) tiene prioridad sobre Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// AuthUseCase login con la credencial compartida; cada login abre una sesión nueva (sid).
type AuthUseCase struct {
	username []byte
	hash     []byte
	jwtCfg   JWTConfig
	newSID   func() string
}

// NewAuthUseCase construye el caso de uso. Si solo hay password en claro se hashea una vez al arrancar.
func NewAuthUseCase(cred Credentials, jwtCfg JWTConfig) (*AuthUseCase, error) {
	if cred.Username == "" {
		return nil, fmt.Errorf("auth: usuario vacío")
	}
	hash := []byte(cred.PasswordHash)
	if len(hash) == 0 {
		if cred.Password == "" {
			return nil, fmt.Errorf("auth: password vacío")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hashear password: %w", err)
		}
		hash = h
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth: AUTH_PASSWORD_HASH no es un hash bcrypt: %w", err)
	}
	return &AuthUseCase{
		username: []byte(cred.Username),
		hash:     hash,
		jwtCfg:   jwtCfg,
		newSID:   func() string { return uuid.New().String() },
	}, nil
}

// Login valida la credencial y devuelve un JWT. Usuario o password incorrectos → domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), uc.username) == 1
	// bcrypt se evalúa siempre para no filtrar por tiempo si el usuario existe.
	passErr := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	expiresAt := time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.newSID(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}, nil
}
