package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// UsuarioUseCase administra cuentas de acceso. El password se guarda como hash bcrypt.
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso con el puerto de persistencia.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// Create crea la cuenta. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.UsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := usuarioFromRequest(in, &entity.Usuario{})
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
	}
	existing, err := uc.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if u.PasswordHash, err = HashPassword(in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(u), nil
}

func (uc *UsuarioUseCase) GetByID(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUsuarioResponse(u), nil
}

// Update password vacío conserva el hash actual.
func (uc *UsuarioUseCase) Update(ctx context.Context, id int64, in dto.UsuarioRequest) (*dto.UsuarioResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}
	u, err := usuarioFromRequest(in, current)
	if err != nil {
		return nil, err
	}
	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
		}
		if u.PasswordHash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, u, in.Version); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(u), nil
}

// Delete elimina la cuenta. Un usuario no puede eliminarse a sí mismo.
func (uc *UsuarioUseCase) Delete(ctx context.Context, id, currentUserID int64) error {
	if id == currentUserID {
		return fmt.Errorf("no puede eliminar su propia cuenta: %w", domain.ErrForbidden)
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

func (uc *UsuarioUseCase) List(ctx context.Context, q dto.UsuarioListQuery) (*dto.Page[dto.UsuarioResponse], error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, repository.UsuarioFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		Rol:        q.Rol,
		Estado:     q.Estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUsuarioResponse(u))
	}
	return pageOf(items, q.PageQuery, total), nil
}

// HashPassword genera el hash bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func usuarioFromRequest(in dto.UsuarioRequest, u *entity.Usuario) (*entity.Usuario, error) {
	var ve domain.ValidationError
	u.Nombre = strings.TrimSpace(in.Nombre)
	if u.Nombre == "" {
		ve.Add("nombre", "es obligatorio")
	}
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		ve.Add("email", "email inválido")
	}
	u.Rol = strings.TrimSpace(in.Rol)
	if !entity.ValidRole(u.Rol) {
		ve.Add("rol", "rol inválido")
	}
	u.Estado = orDefault(in.Estado, orDefault(u.Estado, entity.UsuarioActivo))
	if !entity.ValidUsuarioEstado(u.Estado) {
		ve.Add("estado", "estado inválido")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return u, nil
}

// ToUsuarioResponse salida sin el hash del password.
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		IDUsuario:    u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		Rol:          u.Rol,
		Estado:       u.Estado,
		UltimoAcceso: u.UltimoAcceso,
		Version:      u.Version,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
