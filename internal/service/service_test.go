package service

import (
	"context"
	"testing"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/config"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── Fixture ───────────────────────────────────────────────────────────────────

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	ctx   context.Context
	cfg   *config.Config
	clock *testClock
	codec *auth.TokenCodec

	usuarios     repository.UsuarioRepository
	roles        repository.RolRepository
	permisos     repository.PermisoRepository
	restaurantes repository.RestauranteRepository

	authz       Autorizador
	auth        AuthService
	usuarioSvc  UsuarioService
	rolSvc      RolService
	permisoSvc  PermisoService
	restaurante RestauranteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := infra.NewDatabase("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiresIn:       24 * time.Hour,
		LocationTokenTTL:   10 * time.Minute,
		LocationRefreshTTL: 30 * time.Minute,
		BcryptCost:         bcrypt.MinCost,
	}
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiresIn).WithClock(clock.Now)

	f := &fixture{
		ctx:          context.Background(),
		cfg:          cfg,
		clock:        clock,
		codec:        codec,
		usuarios:     repository.NewUsuarioRepository(db),
		roles:        repository.NewRolRepository(db),
		permisos:     repository.NewPermisoRepository(db),
		restaurantes: repository.NewRestauranteRepository(db),
	}
	f.authz = NewAutorizador(f.usuarios)
	f.restaurante = NewRestauranteService(f.restaurantes, nil)
	f.auth = NewAuthService(f.usuarios, f.roles, f.restaurante, f.authz, codec, cfg)
	f.usuarioSvc = NewUsuarioService(f.usuarios, f.roles, codec, cfg)
	f.rolSvc = NewRolService(f.roles, f.usuarios)
	f.permisoSvc = NewPermisoService(f.permisos, f.roles)
	return f
}

// crearUsuario stores a user directly, bypassing the service checks.
func (f *fixture) crearUsuario(t *testing.T, email, dni, password string, admin, active bool, rolIDs ...uint) *model.Usuario {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Nombre: "Ana", Apellido: "Pérez", Email: email, DNI: dni,
		PasswordHash: hash, DataType: model.DataTypeEmpleado,
		FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IsAdmin:         admin,
		IsActive:        active,
	}
	require.NoError(t, f.usuarios.Create(f.ctx, u, rolIDs))
	return u
}

func (f *fixture) crearRol(t *testing.T, nombre string, perms ...model.Permiso) *model.Rol {
	t.Helper()
	rol := &model.Rol{Nombre: nombre, Permisos: perms}
	require.NoError(t, f.roles.Create(f.ctx, rol, nil))
	return rol
}

func (f *fixture) configurarRestaurante(t *testing.T, lat, lon, radio float64) {
	t.Helper()
	require.NoError(t, f.restaurantes.Create(f.ctx, &model.Restaurante{
		Latitud:  decimal.NewFromFloat(lat),
		Longitud: decimal.NewFromFloat(lon),
		Radio:    decimal.NewFromFloat(radio),
	}))
}

func recurso(r model.Resource, m model.Method) model.Permiso {
	return model.Permiso{Nombre: string(r), Tipo: model.PermissionTypeResource, Recurso: r, Metodo: m}
}

func vista(r model.Resource) model.Permiso {
	return model.Permiso{Nombre: string(r), Tipo: model.PermissionTypeView, Recurso: r, Metodo: model.MethodView}
}

func assertKind(t *testing.T, err error, want apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apierror.KindOf(err), err.Error())
}

func assertMessage(t *testing.T, err error, want string) {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, want, apiErr.Message)
}

func ptr[T any](v T) *T { return &v }
