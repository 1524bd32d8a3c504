package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"
)

const (
	msgRolNombreExiste       = "El nombre del rol ya existe"
	msgRolNombreEnUso        = "El nuevo nombre de rol ya está en uso"
	msgUsuariosNoExisten     = "Uno o más usuarios no existen"
	msgModosPermisoMezclados = "permissions no puede combinarse con existing_permissions o new_permissions"
)

// RolService defines business operations for roles and their inline permissions.
type RolService interface {
	Crear(ctx context.Context, req dto.CrearRolRequest) (*dto.RolMutacionResponse, error)
	ObtenerPorID(ctx context.Context, id uint, includeUsers bool) (*dto.RolResponse, error)
	Listar(ctx context.Context, includeUsers bool) ([]dto.RolResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarRolRequest) (*dto.RolMutacionResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type rolService struct {
	repo     repository.RolRepository
	usuarios repository.UsuarioRepository
}

func NewRolService(repo repository.RolRepository, usuarios repository.UsuarioRepository) RolService {
	return &rolService{repo: repo, usuarios: usuarios}
}

func mapRol(r model.Rol, includeUsers bool) dto.RolResponse {
	resp := dto.RolResponse{
		ID:          r.ID,
		Name:        r.Nombre,
		Description: r.Descripcion,
		Permissions: mapPermisos(r.Permisos),
	}
	if includeUsers {
		resp.Users = make([]dto.UsuarioResumenResponse, 0, len(r.Usuarios))
		for _, u := range r.Usuarios {
			resp.Users = append(resp.Users, dto.UsuarioResumenResponse{
				ID: u.ID, Name: u.Nombre, LastName: u.Apellido, Email: u.Email,
			})
		}
	}
	return resp
}

// verificarUsuarios checks that every id exists and is active before linking.
func (s *rolService) verificarUsuarios(ctx context.Context, ids []uint, msgInactivos string) error {
	if len(ids) == 0 {
		return nil
	}
	ids = unicos(ids)
	found, err := s.usuarios.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return apierror.NotFound(msgUsuariosNoExisten)
	}
	for _, u := range found {
		if !u.IsActive {
			return apierror.Validation(msgInactivos)
		}
	}
	return nil
}

func (s *rolService) nombreLibre(ctx context.Context, nombre, msg string) error {
	_, err := s.repo.FindByNombre(ctx, nombre)
	if err == nil {
		return apierror.Conflict(msg)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *rolService) Crear(ctx context.Context, req dto.CrearRolRequest) (*dto.RolMutacionResponse, error) {
	nombre := strings.TrimSpace(req.Name)
	if nombre == "" {
		return nil, apierror.Validation("El nombre del rol es requerido")
	}
	if err := s.nombreLibre(ctx, nombre, msgRolNombreExiste); err != nil {
		return nil, err
	}

	permisos := make([]model.Permiso, 0, len(req.Permissions))
	for _, in := range req.Permissions {
		p, err := construirPermiso(in.Name, in.Type, in.Resource, in.Method)
		if err != nil {
			return nil, err
		}
		permisos = append(permisos, p)
	}
	if err := validarUnicos(permisos); err != nil {
		return nil, err
	}
	if err := s.verificarUsuarios(ctx, req.Users, "No se puede vincular el rol: hay usuarios inactivos"); err != nil {
		return nil, err
	}

	rol := &model.Rol{Nombre: nombre, Descripcion: req.Description, Permisos: permisos}
	if err := s.repo.Create(ctx, rol, unicos(req.Users)); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apierror.Conflict(msgRolNombreExiste)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apierror.NotFound(msgUsuariosNoExisten)
		}
		return nil, err
	}
	return &dto.RolMutacionResponse{Message: "Rol creado exitosamente", RoleID: rol.ID}, nil
}

func (s *rolService) ObtenerPorID(ctx context.Context, id uint, includeUsers bool) (*dto.RolResponse, error) {
	rol, err := s.repo.FindByID(ctx, id, includeUsers)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound("Rol no encontrado")
		}
		return nil, err
	}
	resp := mapRol(*rol, includeUsers)
	return &resp, nil
}

func (s *rolService) Listar(ctx context.Context, includeUsers bool) ([]dto.RolResponse, error) {
	list, err := s.repo.List(ctx, includeUsers)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		result = append(result, mapRol(r, includeUsers))
	}
	return result, nil
}

// Actualizar validates the whole change set before the single transactional
// write, so a rejected request leaves the role untouched.
func (s *rolService) Actualizar(ctx context.Context, id uint, req dto.ActualizarRolRequest) (*dto.RolMutacionResponse, error) {
	if req.Permissions != nil && (req.ExistingPermissions != nil || len(req.NewPermissions) > 0) {
		return nil, apierror.Validation(msgModosPermisoMezclados)
	}
	rol, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgRolNoExiste)
		}
		return nil, err
	}

	cambios := repository.RolCambios{Descripcion: req.Description}
	if req.Name != nil {
		nombre := strings.TrimSpace(*req.Name)
		if nombre == "" {
			return nil, apierror.Validation("El nombre del rol no puede estar vacío")
		}
		if nombre != rol.Nombre {
			if err := s.nombreLibre(ctx, nombre, msgRolNombreEnUso); err != nil {
				return nil, err
			}
		}
		cambios.Nombre = &nombre
	}

	actuales := make(map[uint]model.Permiso, len(rol.Permisos))
	for _, p := range rol.Permisos {
		actuales[p.ID] = p
	}

	switch {
	case req.Permissions != nil:
		cambios.ReemplazarPermisos = true
		for _, pid := range unicos(*req.Permissions) {
			p, ok := actuales[pid]
			if !ok {
				return nil, apierror.Validation(fmt.Sprintf("El permiso con id %d no pertenece al rol", pid))
			}
			cambios.Conservar = append(cambios.Conservar, p)
		}
	default:
		if err := planificarPermisos(req, actuales, rol.Permisos, &cambios); err != nil {
			return nil, err
		}
	}

	if req.Users != nil {
		if err := s.verificarUsuarios(ctx, *req.Users, "No se puede actualizar: uno o más usuarios están inactivos"); err != nil {
			return nil, err
		}
		ids := unicos(*req.Users)
		cambios.UsuarioIDs = &ids
	}

	if err := s.repo.Update(ctx, rol, cambios); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apierror.Conflict("El nombre o los permisos del rol ya existen")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apierror.NotFound("El rol, un permiso o un usuario ya no existe")
		}
		return nil, err
	}
	return &dto.RolMutacionResponse{Message: "Rol actualizado exitosamente", RoleID: rol.ID}, nil
}

// planificarPermisos resolves split mode: existing_permissions lists the rows
// to keep (and their new values), new_permissions the rows to append. Without
// existing_permissions every current row is kept. The resulting set must stay
// unique per (resource, method).
func planificarPermisos(req dto.ActualizarRolRequest, actuales map[uint]model.Permiso, todos []model.Permiso, c *repository.RolCambios) error {
	resultado := make([]model.Permiso, 0, len(todos)+len(req.NewPermissions))

	if req.ExistingPermissions != nil {
		c.ReemplazarPermisos = true
		vistos := make(map[uint]bool, len(req.ExistingPermissions))
		for _, in := range req.ExistingPermissions {
			actual, ok := actuales[in.ID]
			if !ok {
				return apierror.Validation(fmt.Sprintf("El permiso con id %d no pertenece al rol", in.ID))
			}
			if vistos[in.ID] {
				return apierror.Validation(fmt.Sprintf("El permiso con id %d está repetido", in.ID))
			}
			vistos[in.ID] = true

			p, err := construirPermiso(
				valorO(in.Name, actual.Nombre),
				valorO(in.Type, string(actual.Tipo)),
				valorO(in.Resource, string(actual.Recurso)),
				valorO(in.Method, string(actual.Metodo)),
			)
			if err != nil {
				return err
			}
			p.ID = actual.ID
			p.RolID = actual.RolID
			c.Conservar = append(c.Conservar, p)
		}
		resultado = append(resultado, c.Conservar...)
	} else {
		resultado = append(resultado, todos...)
	}

	for _, in := range req.NewPermissions {
		p, err := construirPermiso(in.Name, in.Type, in.Resource, in.Method)
		if err != nil {
			return err
		}
		c.Nuevos = append(c.Nuevos, p)
	}
	resultado = append(resultado, c.Nuevos...)
	return validarUnicos(resultado)
}

func valorO(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

// Eliminar removes the role together with its permissions and user links.
func (s *rolService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgRolNoExiste)
		}
		return err
	}
	return nil
}
