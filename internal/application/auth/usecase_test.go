package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

// stubUsers solo implementa lo que usa el login.
type stubUsers struct {
	repository.UsuarioRepository
	byEmail  map[string]*entity.Usuario
	touchErr error
	touched  int
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	return s.byEmail[email], nil
}

func (s *stubUsers) TouchLastAccess(context.Context, int64, time.Time) error {
	s.touched++
	return s.touchErr
}

var testJWT = JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "coop-test"}

func newUsers(t *testing.T, estado string) *stubUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubUsers{byEmail: map[string]*entity.Usuario{
		"ana@coop.org": {ID: 7, Nombre: "Ana", Email: "ana@coop.org", PasswordHash: string(hash), Rol: entity.RoleContador, Estado: estado},
	}}
}

func TestLogin_Exitoso(t *testing.T) {
	users := newUsers(t, entity.UsuarioActivo)
	uc := NewAuthUseCase(users, testJWT, logger.Nop())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@coop.org ", Password: "secreto123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, now.Add(time.Hour), out.ExpiresAt)
	assert.Equal(t, int64(7), out.User.IDUsuario)
	require.NotNil(t, out.User.UltimoAcceso)
	assert.Equal(t, 1, users.touched)

	sess, err := uc.Session(out.Token)
	require.NoError(t, err)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, entity.RoleContador, sess.Rol)
	assert.Equal(t, "ana@coop.org", sess.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := NewAuthUseCase(newUsers(t, entity.UsuarioActivo), testJWT, logger.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@coop.org", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@coop.org", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := NewAuthUseCase(newUsers(t, entity.UsuarioInactivo), testJWT, logger.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@coop.org", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := NewAuthUseCase(newUsers(t, entity.UsuarioActivo), testJWT, logger.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestLogin_FalloAlRegistrarAccesoNoBloquea(t *testing.T) {
	users := newUsers(t, entity.UsuarioActivo)
	users.touchErr = errors.New("db caída")
	uc := NewAuthUseCase(users, testJWT, logger.Nop())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@coop.org", Password: "secreto123"})
	require.NoError(t, err)
	assert.Nil(t, out.User.UltimoAcceso)
}

func TestSession_TokenInvalido(t *testing.T) {
	uc := NewAuthUseCase(&stubUsers{}, testJWT, logger.Nop())
	_, err := uc.Session("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
