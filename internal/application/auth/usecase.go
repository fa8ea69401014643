package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/usecase"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/jwt"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y consulta de sesión.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// Login verifica email/password, registra el acceso y emite el token.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		var ve domain.ValidationError
		if email == "" {
			ve.Add("email", "es obligatorio")
		}
		if in.Password == "" {
			ve.Add("password", "es obligatorio")
		}
		return nil, &ve
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Estado != entity.UsuarioActivo {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Nombre,
		Role:   user.Rol,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.TouchLastAccess(ctx, user.ID, now); err != nil {
		// El login no falla por no poder registrar el acceso.
		uc.log.Warn().Err(err).Int64("id_usuario", user.ID).Msg("no se pudo registrar ultimo_acceso")
	} else {
		user.UltimoAcceso = &now
	}
	uc.log.Info().Int64("id_usuario", user.ID).Str("rol", user.Rol).Msg("inicio de sesión")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      *usecase.ToUsuarioResponse(user),
	}, nil
}

// Session valida el token y devuelve la identidad de la sesión.
func (uc *AuthUseCase) Session(token string) (*dto.SessionResponse, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionResponse{
		Authenticated: true,
		IDUsuario:     id.UserID,
		Nombre:        id.Name,
		Email:         id.Email,
		Rol:           id.Role,
		ExpiresAt:     id.ExpiresAt,
	}, nil
}
