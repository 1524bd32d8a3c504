package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/config"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"
)

const (
	fechaLayout = "2006-01-02"

	msgEmailEnUso         = "El email ya está en uso"
	msgDNIEnUso           = "El DNI ya está en uso"
	msgEmailODNIEnUso     = "El email o DNI ya está registrado"
	msgRolesNoExisten     = "Uno o más roles no existen"
	msgAdminDesactivar    = "No se puede desactivar el usuario administrador"
	msgAdminEliminar      = "No se puede eliminar el usuario administrador"
	msgPasswordEndpoint   = "La contraseña solo puede cambiarse desde /auth/passwordChange"
	msgCamposRestringidos = "No se puede cambiar la contraseña o el estado isActive o los roles o el dataType por este endpoint"
)

// UsuarioService defines business operations for platform accounts.
type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioMutacionResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, dataType string) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioMutacionResponse, error)
	Eliminar(ctx context.Context, id uint) error
	// ActualizarPerfil is the self-service update; it returns a fresh session token.
	ActualizarPerfil(ctx context.Context, p *auth.Principal, req dto.ActualizarUsuarioRequest) (*dto.UsuarioMutacionResponse, error)
}

type usuarioService struct {
	repo  repository.UsuarioRepository
	roles repository.RolRepository
	codec *auth.TokenCodec
	cfg   *config.Config
}

func NewUsuarioService(repo repository.UsuarioRepository, roles repository.RolRepository, codec *auth.TokenCodec, cfg *config.Config) UsuarioService {
	return &usuarioService{repo: repo, roles: roles, codec: codec, cfg: cfg}
}

func mapUsuario(u model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:        u.ID,
		Name:      u.Nombre,
		LastName:  u.Apellido,
		Email:     u.Email,
		Address:   u.Direccion,
		Phone:     u.Telefono,
		DataType:  string(u.DataType),
		BirthDate: u.FechaNacimiento.Format(fechaLayout),
		DNI:       u.DNI,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		Roles:     make([]dto.RolUsuarioResponse, 0, len(u.Roles)),
	}
	for _, r := range u.Roles {
		resp.Roles = append(resp.Roles, dto.RolUsuarioResponse{
			ID:          r.ID,
			Name:        r.Nombre,
			Description: r.Descripcion,
			Permissions: mapPermisos(r.Permisos),
		})
	}
	return resp
}

func normalizarEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, apierror.Validation("birthDate debe tener el formato YYYY-MM-DD")
	}
	return t, nil
}

// verificarUnicidad checks email and dni against other accounts. selfID is
// the account being updated, 0 on create.
func (s *usuarioService) verificarUnicidad(ctx context.Context, email, dni *string, selfID uint) error {
	if email != nil {
		u, err := s.repo.FindByEmail(ctx, *email)
		if err == nil && u.ID != selfID {
			return apierror.Conflict(msgEmailEnUso)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	if dni != nil {
		u, err := s.repo.FindByDNI(ctx, *dni)
		if err == nil && u.ID != selfID {
			return apierror.Conflict(msgDNIEnUso)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *usuarioService) verificarRoles(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	ids = unicos(ids)
	found, err := s.roles.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return apierror.NotFound(msgRolesNoExisten)
	}
	return nil
}

// guardarError maps store failures of a user write.
func guardarError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return apierror.Conflict(msgEmailODNIEnUso)
	case errors.Is(err, repository.ErrNotFound):
		return apierror.NotFound(msgRolesNoExisten)
	}
	return err
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioMutacionResponse, error) {
	if err := auth.ValidatePasswordPolicy(req.Password); err != nil {
		return nil, apierror.Validation(err.Error())
	}
	email := normalizarEmail(req.Email)
	dni := strings.TrimSpace(req.DNI)
	if err := s.verificarUnicidad(ctx, &email, &dni, 0); err != nil {
		return nil, err
	}
	if err := s.verificarRoles(ctx, req.Roles); err != nil {
		return nil, err
	}

	dataType := model.DataTypeEmpleado
	if req.DataType != "" {
		dt, err := model.ParseDataType(req.DataType)
		if err != nil {
			return nil, apierror.Validation(err.Error())
		}
		dataType = dt
	}
	nacimiento, err := parseFecha(req.BirthDate)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.Usuario{
		Nombre:          strings.TrimSpace(req.Name),
		Apellido:        strings.TrimSpace(req.LastName),
		Email:           email,
		DNI:             dni,
		PasswordHash:    hash,
		Direccion:       req.Address,
		Telefono:        req.Phone,
		DataType:        dataType,
		FechaNacimiento: nacimiento,
		IsAdmin:         false,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, u, unicos(req.Roles)); err != nil {
		return nil, guardarError(err)
	}
	return &dto.UsuarioMutacionResponse{Message: "Usuario creado exitosamente", UserID: u.ID}, nil
}

func (s *usuarioService) ObtenerPorID(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	u, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapUsuario(*u)
	return &resp, nil
}

func (s *usuarioService) buscar(ctx context.Context, id uint) (*model.Usuario, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgUsuarioNoEncontrado)
		}
		return nil, err
	}
	return u, nil
}

func (s *usuarioService) Listar(ctx context.Context, dataType string) ([]dto.UsuarioResponse, error) {
	var filtro repository.UsuarioFiltro
	if dataType != "" {
		dt, err := model.ParseDataType(dataType)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf(
				"El dataType %q no es válido. Valores válidos: %s, %s", dataType, model.DataTypeEmpleado, model.DataTypeCliente))
		}
		filtro.DataType = &dt
	}
	users, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	result := make([]dto.UsuarioResponse, 0, len(users))
	for _, u := range users {
		result = append(result, mapUsuario(u))
	}
	return result, nil
}

// aplicarCambios copies the non-nil profile fields onto u after checking
// uniqueness against other accounts.
func (s *usuarioService) aplicarCambios(ctx context.Context, u *model.Usuario, req dto.ActualizarUsuarioRequest) error {
	var email, dni *string
	if req.Email != nil {
		e := normalizarEmail(*req.Email)
		email = &e
	}
	if req.DNI != nil {
		d := strings.TrimSpace(*req.DNI)
		dni = &d
	}
	if err := s.verificarUnicidad(ctx, email, dni, u.ID); err != nil {
		return err
	}

	if req.Name != nil {
		u.Nombre = strings.TrimSpace(*req.Name)
	}
	if req.LastName != nil {
		u.Apellido = strings.TrimSpace(*req.LastName)
	}
	if email != nil {
		u.Email = *email
	}
	if dni != nil {
		u.DNI = *dni
	}
	if req.Address != nil {
		u.Direccion = req.Address
	}
	if req.Phone != nil {
		u.Telefono = req.Phone
	}
	if req.BirthDate != nil {
		t, err := parseFecha(*req.BirthDate)
		if err != nil {
			return err
		}
		u.FechaNacimiento = t
	}
	return nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioMutacionResponse, error) {
	if req.Password != nil {
		return nil, apierror.Validation(msgPasswordEndpoint)
	}
	u, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsAdmin && req.IsActive != nil && !*req.IsActive {
		return nil, apierror.Forbidden(msgAdminDesactivar)
	}
	if err := s.aplicarCambios(ctx, u, req); err != nil {
		return nil, err
	}
	if req.DataType != nil {
		dt, err := model.ParseDataType(*req.DataType)
		if err != nil {
			return nil, apierror.Validation(err.Error())
		}
		u.DataType = dt
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	var rolIDs *[]uint
	if req.Roles != nil {
		if err := s.verificarRoles(ctx, *req.Roles); err != nil {
			return nil, err
		}
		ids := unicos(*req.Roles)
		rolIDs = &ids
	}

	if err := s.repo.Update(ctx, u, rolIDs); err != nil {
		return nil, guardarError(err)
	}
	return &dto.UsuarioMutacionResponse{Message: "Usuario actualizado exitosamente", UserID: u.ID}, nil
}

func (s *usuarioService) Eliminar(ctx context.Context, id uint) error {
	u, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		return apierror.Forbidden(msgAdminEliminar)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgUsuarioNoEncontrado)
		}
		return err
	}
	return nil
}

// ActualizarPerfil lets the caller edit their own profile without any
// permission, but never their password, status, roles or data type.
func (s *usuarioService) ActualizarPerfil(ctx context.Context, p *auth.Principal, req dto.ActualizarUsuarioRequest) (*dto.UsuarioMutacionResponse, error) {
	if req.Password != nil || req.IsActive != nil || req.Roles != nil || req.DataType != nil {
		return nil, apierror.Validation(msgCamposRestringidos)
	}
	u, err := s.buscar(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	// a deactivated caller must not be able to mint a fresh session
	if !u.IsActive {
		return nil, apierror.Forbidden(msgUsuarioInactivo)
	}
	if err := s.aplicarCambios(ctx, u, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u, nil); err != nil {
		return nil, guardarError(err)
	}

	token, err := s.codec.Issue(auth.SessionClaims(u))
	if err != nil {
		return nil, err
	}
	return &dto.UsuarioMutacionResponse{Message: "Usuario actualizado exitosamente", UserID: u.ID, Token: token}, nil
}
