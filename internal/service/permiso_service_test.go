package service

import (
	"testing"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermisoService_Crear(t *testing.T) {
	f := newFixture(t)
	rol := f.crearRol(t, "Delivery")

	resp, err := f.permisoSvc.Crear(f.ctx, dto.CrearPermisoRequest{
		Name: "Leer notas", Type: "RECURSO", Resource: "Notes_dp", Method: "read", RoleID: rol.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Resource", resp.Type)
	assert.Equal(t, "Read", resp.Method)
	require.NotNil(t, resp.Role)
	assert.Equal(t, "Delivery", resp.Role.Name)

	_, err = f.permisoSvc.Crear(f.ctx, dto.CrearPermisoRequest{
		Name: "Otra vez", Type: "Resource", Resource: "Notes_dp", Method: "Read", RoleID: rol.ID,
	})
	assertKind(t, err, apierror.KindConflict)
	assertMessage(t, err, "El permiso ya existe para este recurso y método en el rol")

	_, err = f.permisoSvc.Crear(f.ctx, dto.CrearPermisoRequest{
		Name: "Huérfano", Type: "Resource", Resource: "Notes_dp", Method: "Read", RoleID: 999,
	})
	assertKind(t, err, apierror.KindNotFound)

	_, err = f.permisoSvc.Crear(f.ctx, dto.CrearPermisoRequest{
		Name: "Vista rara", Type: "View", Resource: "Notes_dp", Method: "View", RoleID: rol.ID,
	})
	assertKind(t, err, apierror.KindValidation)
}

func TestPermisoService_SamePairInAnotherRoleIsAllowed(t *testing.T) {
	f := newFixture(t)
	a := f.crearRol(t, "A", recurso(model.ResourceNotesDp, model.MethodRead))
	b := f.crearRol(t, "B")

	_, err := f.permisoSvc.Crear(f.ctx, dto.CrearPermisoRequest{
		Name: "Leer notas", Type: "Resource", Resource: "Notes_dp", Method: "Read", RoleID: b.ID,
	})
	require.NoError(t, err)

	list, err := f.permisoSvc.Listar(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].RoleID)
}

func TestPermisoService_Actualizar(t *testing.T) {
	f := newFixture(t)
	rol := f.crearRol(t, "Delivery",
		recurso(model.ResourceNotesDp, model.MethodRead),
		recurso(model.ResourceLogsDp, model.MethodRead),
	)
	otro := f.crearRol(t, "Gerencia")
	logs := rol.Permisos[1].ID

	got, err := f.permisoSvc.Actualizar(f.ctx, logs, dto.ActualizarPermisoRequest{Method: ptr("All")})
	require.NoError(t, err)
	assert.Equal(t, "All", got.Method)
	assert.Equal(t, "Logs_dp", got.Resource)

	// moving Logs_dp onto Notes_dp/Read collides with the sibling row
	_, err = f.permisoSvc.Actualizar(f.ctx, logs, dto.ActualizarPermisoRequest{
		Resource: ptr("Notes_dp"), Method: ptr("Read"),
	})
	assertKind(t, err, apierror.KindConflict)

	got, err = f.permisoSvc.Actualizar(f.ctx, logs, dto.ActualizarPermisoRequest{RoleID: &otro.ID})
	require.NoError(t, err)
	assert.Equal(t, otro.ID, got.RoleID)

	_, err = f.permisoSvc.Actualizar(f.ctx, logs, dto.ActualizarPermisoRequest{RoleID: ptr(uint(999))})
	assertKind(t, err, apierror.KindNotFound)

	// merged result must still be a valid shape
	_, err = f.permisoSvc.Actualizar(f.ctx, logs, dto.ActualizarPermisoRequest{Type: ptr("View")})
	assertKind(t, err, apierror.KindValidation)

	_, err = f.permisoSvc.Actualizar(f.ctx, 999, dto.ActualizarPermisoRequest{Name: ptr("X")})
	assertKind(t, err, apierror.KindNotFound)
}

func TestPermisoService_Eliminar(t *testing.T) {
	f := newFixture(t)
	rol := f.crearRol(t, "Delivery", recurso(model.ResourceNotesDp, model.MethodRead))
	id := rol.Permisos[0].ID

	require.NoError(t, f.permisoSvc.Eliminar(f.ctx, id))
	assertKind(t, f.permisoSvc.Eliminar(f.ctx, id), apierror.KindNotFound)
	_, err := f.permisoSvc.ObtenerPorID(f.ctx, id)
	assertKind(t, err, apierror.KindNotFound)
}
