package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newUsuario(email, dni string) *model.Usuario {
	return &model.Usuario{
		Nombre: "Test", Apellido: "User", Email: email, DNI: dni,
		PasswordHash: "x", DataType: model.DataTypeEmpleado,
		FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func permiso(r model.Resource, m model.Method) model.Permiso {
	return model.Permiso{Nombre: string(r) + " " + string(m), Tipo: model.PermissionTypeResource, Recurso: r, Metodo: m}
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUsuarioRepo_CreateAndFindWithPermissions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)
	users := NewUsuarioRepository(db)

	rol := &model.Rol{Nombre: "Cocina", Permisos: []model.Permiso{
		permiso(model.ResourceRecipeCocina, model.MethodAll),
	}}
	require.NoError(t, roles.Create(ctx, rol, nil))

	u := newUsuario("chef@charlotte.com", "V1000001")
	require.NoError(t, users.Create(ctx, u, []uint{rol.ID}))

	got, err := users.FindByEmail(ctx, "  CHEF@charlotte.com ")
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	require.Len(t, got.Roles[0].Permisos, 1)
	assert.Equal(t, model.MethodAll, got.Roles[0].Permisos[0].Metodo)

	byDNI, err := users.FindByDNI(ctx, "V1000001")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byDNI.ID)
}

func TestUsuarioRepo_UniqueEmailAndDNI(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUsuarioRepository(db)

	require.NoError(t, users.Create(ctx, newUsuario("a@charlotte.com", "1000001"), nil))

	err := users.Create(ctx, newUsuario("a@charlotte.com", "1000002"), nil)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	err = users.Create(ctx, newUsuario("b@charlotte.com", "1000001"), nil)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUsuarioRepo_CreateWithMissingRoleRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUsuarioRepository(db)

	err := users.Create(ctx, newUsuario("a@charlotte.com", "1000001"), []uint{999})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.FindByEmail(ctx, "a@charlotte.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsuarioRepo_UpdateKeepsInactiveFlag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUsuarioRepository(db)

	u := newUsuario("a@charlotte.com", "1000001")
	require.NoError(t, users.Create(ctx, u, nil))

	u.IsActive = false
	require.NoError(t, users.Update(ctx, u, nil))

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUsuarioRepo_ListFiltersByDataType(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUsuarioRepository(db)

	cliente := newUsuario("c@charlotte.com", "1000002")
	cliente.DataType = model.DataTypeCliente
	require.NoError(t, users.Create(ctx, newUsuario("e@charlotte.com", "1000001"), nil))
	require.NoError(t, users.Create(ctx, cliente, nil))

	dt := model.DataTypeCliente
	list, err := users.List(ctx, UsuarioFiltro{DataType: &dt})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c@charlotte.com", list[0].Email)

	all, err := users.List(ctx, UsuarioFiltro{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUsuarioRepo_DeleteAndPasswordNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUsuarioRepository(db)

	assert.ErrorIs(t, users.Delete(ctx, 77), ErrNotFound)
	assert.ErrorIs(t, users.UpdatePassword(ctx, 77, "hash"), ErrNotFound)
}

// ── Roles / Permisos ──────────────────────────────────────────────────────────

func TestPermisoRepo_UniquePerRoleNotAcrossRoles(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)
	permisos := NewPermisoRepository(db)

	r1 := &model.Rol{Nombre: "R1"}
	r2 := &model.Rol{Nombre: "R2"}
	require.NoError(t, roles.Create(ctx, r1, nil))
	require.NoError(t, roles.Create(ctx, r2, nil))

	p := permiso(model.ResourceTableAtc, model.MethodRead)
	p.RolID = r1.ID
	require.NoError(t, permisos.Create(ctx, &p))

	dup := permiso(model.ResourceTableAtc, model.MethodRead)
	dup.RolID = r1.ID
	assert.ErrorIs(t, permisos.Create(ctx, &dup), ErrDuplicateKey)

	other := permiso(model.ResourceTableAtc, model.MethodRead)
	other.RolID = r2.ID
	assert.NoError(t, permisos.Create(ctx, &other))
}

func TestRolRepo_UniqueName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)

	require.NoError(t, roles.Create(ctx, &model.Rol{Nombre: "Maitre"}, nil))
	assert.ErrorIs(t, roles.Create(ctx, &model.Rol{Nombre: "Maitre"}, nil), ErrDuplicateKey)
}

func TestRolRepo_UpdateSplitMode(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)
	users := NewUsuarioRepository(db)

	u := newUsuario("a@charlotte.com", "1000001")
	require.NoError(t, users.Create(ctx, u, nil))

	rol := &model.Rol{Nombre: "Sala", Permisos: []model.Permiso{
		permiso(model.ResourceTableAtc, model.MethodRead),
		permiso(model.ResourceTableAtc, model.MethodUpdate),
	}}
	require.NoError(t, roles.Create(ctx, rol, nil))
	keep := rol.Permisos[0]
	keep.Metodo = model.MethodAll

	nombre := "Sala principal"
	ids := []uint{u.ID}
	err := roles.Update(ctx, rol, RolCambios{
		Nombre:             &nombre,
		ReemplazarPermisos: true,
		Conservar:          []model.Permiso{keep},
		Nuevos:             []model.Permiso{permiso(model.ResourceZonesDp, model.MethodRead)},
		UsuarioIDs:         &ids,
	})
	require.NoError(t, err)

	got, err := roles.FindByID(ctx, rol.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Sala principal", got.Nombre)
	require.Len(t, got.Permisos, 2)
	assert.Equal(t, keep.ID, got.Permisos[0].ID)
	assert.Equal(t, model.MethodAll, got.Permisos[0].Metodo)
	assert.Equal(t, model.ResourceZonesDp, got.Permisos[1].Recurso)
	require.Len(t, got.Usuarios, 1)
	assert.Equal(t, u.ID, got.Usuarios[0].ID)
}

func TestRolRepo_UpdateIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)

	rol := &model.Rol{Nombre: "Sala", Permisos: []model.Permiso{
		permiso(model.ResourceTableAtc, model.MethodRead),
	}}
	require.NoError(t, roles.Create(ctx, rol, nil))

	nombre := "Renombrado"
	err := roles.Update(ctx, rol, RolCambios{
		Nombre: &nombre,
		// both new rows collide with each other: the second insert fails
		Nuevos: []model.Permiso{
			permiso(model.ResourceZonesDp, model.MethodRead),
			permiso(model.ResourceZonesDp, model.MethodRead),
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := roles.FindByID(ctx, rol.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Sala", got.Nombre)
	assert.Len(t, got.Permisos, 1)
}

func TestRolRepo_UpdateWithMissingUserRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)

	rol := &model.Rol{Nombre: "Sala"}
	require.NoError(t, roles.Create(ctx, rol, nil))

	nombre := "Otro"
	ids := []uint{404}
	err := roles.Update(ctx, rol, RolCambios{Nombre: &nombre, UsuarioIDs: &ids})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := roles.FindByID(ctx, rol.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Sala", got.Nombre)
}

func TestRolRepo_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)
	users := NewUsuarioRepository(db)
	permisos := NewPermisoRepository(db)

	rol := &model.Rol{Nombre: "Sala", Permisos: []model.Permiso{permiso(model.ResourceTableAtc, model.MethodRead)}}
	require.NoError(t, roles.Create(ctx, rol, nil))
	u := newUsuario("a@charlotte.com", "1000001")
	require.NoError(t, users.Create(ctx, u, []uint{rol.ID}))

	require.NoError(t, roles.Delete(ctx, rol.ID))

	left, err := permisos.ListByRol(ctx, rol.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Roles)

	assert.ErrorIs(t, roles.Delete(ctx, rol.ID), ErrNotFound)
}

func TestPermisoRepo_FindIncludesRole(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	roles := NewRolRepository(db)
	permisos := NewPermisoRepository(db)

	rol := &model.Rol{Nombre: "Sala", Permisos: []model.Permiso{permiso(model.ResourceTableAtc, model.MethodRead)}}
	require.NoError(t, roles.Create(ctx, rol, nil))

	p, err := permisos.FindByID(ctx, rol.Permisos[0].ID, true)
	require.NoError(t, err)
	require.NotNil(t, p.Rol)
	assert.Equal(t, "Sala", p.Rol.Nombre)

	_, err = permisos.FindByID(ctx, 999, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Restaurantes ──────────────────────────────────────────────────────────────

func TestRestauranteRepo_FirstAndUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRestauranteRepository(db)

	_, err := repo.First(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	r := &model.Restaurante{
		Latitud:  decimal.RequireFromString("10.0000000"),
		Longitud: decimal.RequireFromString("-66.0000000"),
		Radio:    decimal.RequireFromString("0.5"),
	}
	require.NoError(t, repo.Create(ctx, r))

	r.Radio = decimal.RequireFromString("1.25")
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.First(ctx)
	require.NoError(t, err)
	lat, lon, radio := got.Coordenadas()
	assert.InDelta(t, 10.0, lat, 1e-9)
	assert.InDelta(t, -66.0, lon, 1e-9)
	assert.InDelta(t, 1.25, radio, 1e-9)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
