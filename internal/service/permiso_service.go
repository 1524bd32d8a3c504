package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"
)

const (
	msgPermisoNoEncontrado = "Permiso no encontrado"
	msgRolNoExiste         = "El rol no existe"
	msgPermisoDuplicado    = "El permiso ya existe para este recurso y método en el rol"
)

// PermisoService defines business operations for individual permissions.
type PermisoService interface {
	Crear(ctx context.Context, req dto.CrearPermisoRequest) (*dto.PermisoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.PermisoResponse, error)
	Listar(ctx context.Context) ([]dto.PermisoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarPermisoRequest) (*dto.PermisoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type permisoService struct {
	repo  repository.PermisoRepository
	roles repository.RolRepository
}

func NewPermisoService(repo repository.PermisoRepository, roles repository.RolRepository) PermisoService {
	return &permisoService{repo: repo, roles: roles}
}

func mapPermiso(p model.Permiso) dto.PermisoResponse {
	resp := dto.PermisoResponse{
		ID:       p.ID,
		Name:     p.Nombre,
		Type:     string(p.Tipo),
		Resource: string(p.Recurso),
		Method:   string(p.Metodo),
		RoleID:   p.RolID,
	}
	if p.Rol != nil {
		resp.Role = &dto.RolResumenResponse{ID: p.Rol.ID, Name: p.Rol.Nombre, Description: p.Rol.Descripcion}
	}
	return resp
}

func mapPermisos(list []model.Permiso) []dto.PermisoResponse {
	out := make([]dto.PermisoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapPermiso(p))
	}
	return out
}

// construirPermiso parses the vocabulary fields into canonical values and
// checks that type, resource and method agree.
func construirPermiso(nombre, tipo, recurso, metodo string) (model.Permiso, error) {
	t, err := model.ParsePermissionType(tipo)
	if err != nil {
		return model.Permiso{}, apierror.Validation(err.Error())
	}
	r, err := model.ParseResource(recurso)
	if err != nil {
		return model.Permiso{}, apierror.Validation(err.Error())
	}
	m, err := model.ParseMethod(metodo)
	if err != nil {
		return model.Permiso{}, apierror.Validation(err.Error())
	}
	if err := model.CheckPermissionShape(t, r, m); err != nil {
		return model.Permiso{}, apierror.Validation(err.Error())
	}
	return model.Permiso{Nombre: nombre, Tipo: t, Recurso: r, Metodo: m}, nil
}

// validarUnicos rejects a permission set where two entries share resource
// and method.
func validarUnicos(perms []model.Permiso) error {
	for i := range perms {
		for j := i + 1; j < len(perms); j++ {
			if perms[i].MismaRegla(perms[j]) {
				return apierror.Conflict(fmt.Sprintf(
					"El recurso %s con el método %s está repetido en el rol", perms[i].Recurso, perms[i].Metodo))
			}
		}
	}
	return nil
}

func (s *permisoService) rolExiste(ctx context.Context, id uint) error {
	if _, err := s.roles.FindByID(ctx, id, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgRolNoExiste)
		}
		return err
	}
	return nil
}

// verificarLibre fails with Conflict if another permission of the role already
// uses the pair. exceptID skips the permission being updated.
func (s *permisoService) verificarLibre(ctx context.Context, p model.Permiso, exceptID uint) error {
	actuales, err := s.repo.ListByRol(ctx, p.RolID)
	if err != nil {
		return err
	}
	for _, a := range actuales {
		if a.ID != exceptID && a.MismaRegla(p) {
			return apierror.Conflict(msgPermisoDuplicado)
		}
	}
	return nil
}

func (s *permisoService) Crear(ctx context.Context, req dto.CrearPermisoRequest) (*dto.PermisoResponse, error) {
	p, err := construirPermiso(req.Name, req.Type, req.Resource, req.Method)
	if err != nil {
		return nil, err
	}
	p.RolID = req.RoleID
	if err := s.rolExiste(ctx, p.RolID); err != nil {
		return nil, err
	}
	if err := s.verificarLibre(ctx, p, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apierror.Conflict(msgPermisoDuplicado)
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, p.ID)
}

func (s *permisoService) ObtenerPorID(ctx context.Context, id uint) (*dto.PermisoResponse, error) {
	p, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgPermisoNoEncontrado)
		}
		return nil, err
	}
	resp := mapPermiso(*p)
	return &resp, nil
}

func (s *permisoService) Listar(ctx context.Context) ([]dto.PermisoResponse, error) {
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return mapPermisos(list), nil
}

// Actualizar validates the merged result, not just the fields sent.
func (s *permisoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarPermisoRequest) (*dto.PermisoResponse, error) {
	actual, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgPermisoNoEncontrado)
		}
		return nil, err
	}

	nombre, tipo, recurso, metodo := actual.Nombre, string(actual.Tipo), string(actual.Recurso), string(actual.Metodo)
	if req.Name != nil {
		nombre = *req.Name
	}
	if req.Type != nil {
		tipo = *req.Type
	}
	if req.Resource != nil {
		recurso = *req.Resource
	}
	if req.Method != nil {
		metodo = *req.Method
	}
	p, err := construirPermiso(nombre, tipo, recurso, metodo)
	if err != nil {
		return nil, err
	}
	p.ID = actual.ID
	p.RolID = actual.RolID
	if req.RoleID != nil && *req.RoleID != actual.RolID {
		if err := s.rolExiste(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		p.RolID = *req.RoleID
	}
	if err := s.verificarLibre(ctx, p, p.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apierror.Conflict(msgPermisoDuplicado)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apierror.NotFound(msgPermisoNoEncontrado)
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, p.ID)
}

func (s *permisoService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgPermisoNoEncontrado)
		}
		return err
	}
	return nil
}
