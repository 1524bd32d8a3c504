package service

import (
	"context"
	"errors"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"

	"github.com/rs/zerolog/log"
)

// MsgSinPermiso is returned whenever a permission gate denies access.
const MsgSinPermiso = "No tiene permisos para realizar esta acción"

// Autorizador answers permission questions against the live store, so role
// changes apply on the next request regardless of what the token says.
type Autorizador interface {
	TienePermiso(ctx context.Context, userID uint, r model.Resource, m model.Method) (bool, error)
	TienePermisoVista(ctx context.Context, userID uint, r model.Resource) (bool, error)
	TienePermisosVista(ctx context.Context, userID uint, rs []model.Resource) (map[model.Resource]bool, error)
	RequierePermiso(ctx context.Context, userID uint, r model.Resource, m model.Method) error
}

type autorizador struct {
	usuarios repository.UsuarioRepository
}

func NewAutorizador(usuarios repository.UsuarioRepository) Autorizador {
	return &autorizador{usuarios: usuarios}
}

// cargar returns nil without error for unknown users; they hold no permissions.
func (a *autorizador) cargar(ctx context.Context, userID uint) (*model.Usuario, error) {
	u, err := a.usuarios.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (a *autorizador) TienePermiso(ctx context.Context, userID uint, r model.Resource, m model.Method) (bool, error) {
	u, err := a.cargar(ctx, userID)
	if err != nil {
		return false, err
	}
	ok := u != nil && PermiteRecurso(u, r, m)
	infra.RecordAuthzDecision(string(r), string(m), ok)
	return ok, nil
}

func (a *autorizador) TienePermisoVista(ctx context.Context, userID uint, r model.Resource) (bool, error) {
	u, err := a.cargar(ctx, userID)
	if err != nil {
		return false, err
	}
	ok := u != nil && PermiteVista(u, r)
	infra.RecordAuthzDecision(string(r), string(model.MethodView), ok)
	return ok, nil
}

// TienePermisosVista evaluates several views with a single store lookup.
func (a *autorizador) TienePermisosVista(ctx context.Context, userID uint, rs []model.Resource) (map[model.Resource]bool, error) {
	u, err := a.cargar(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[model.Resource]bool, len(rs))
	for _, r := range rs {
		ok := u != nil && PermiteVista(u, r)
		infra.RecordAuthzDecision(string(r), string(model.MethodView), ok)
		out[r] = ok
	}
	return out, nil
}

func (a *autorizador) RequierePermiso(ctx context.Context, userID uint, r model.Resource, m model.Method) error {
	ok, err := a.TienePermiso(ctx, userID, r, m)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Uint("user_id", userID).Str("resource", string(r)).Str("method", string(m)).
			Msg("permiso denegado")
		return apierror.Forbidden(MsgSinPermiso)
	}
	return nil
}

// PermiteRecurso is the resource-level rule: admins pass, otherwise some
// Resource permission must name r with method m or All. View permissions
// never satisfy it.
func PermiteRecurso(u *model.Usuario, r model.Resource, m model.Method) bool {
	if u.IsAdmin {
		return true
	}
	for _, rol := range u.Roles {
		for _, p := range rol.Permisos {
			if p.Tipo != model.PermissionTypeResource || p.Recurso != r {
				continue
			}
			if p.Metodo == m || p.Metodo == model.MethodAll {
				return true
			}
		}
	}
	return false
}

// PermiteVista is the UI-gating rule: admins pass, otherwise a View
// permission on r with method View.
func PermiteVista(u *model.Usuario, r model.Resource) bool {
	if u.IsAdmin {
		return true
	}
	for _, rol := range u.Roles {
		for _, p := range rol.Permisos {
			if p.Tipo == model.PermissionTypeView && p.Recurso == r && p.Metodo == model.MethodView {
				return true
			}
		}
	}
	return false
}
