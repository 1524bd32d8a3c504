//go:build integration

package router

// Runs the HTTP surface against real Postgres and Redis containers.
// go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newContainerEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("seguridad_test"),
		tcPostgres.WithUsername("charlotte"),
		tcPostgres.WithPassword("charlotte"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(pgURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := testConfig()
	cfg.DatabaseURL = pgURL
	cfg.RedisURL = rdURL
	cfg.RestaurantCacheTTL = time.Minute

	return &env{
		t:        t,
		engine:   New(cfg, db, rdb),
		db:       db,
		usuarios: repository.NewUsuarioRepository(db),
		roles:    repository.NewRolRepository(db),
	}
}

func TestIntegration_HealthReportsRedis(t *testing.T) {
	e := newContainerEnv(t)

	w := e.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connected", decode(t, w)["redis"])
}

func TestIntegration_CachedGeofenceFollowsUpdates(t *testing.T) {
	e := newContainerEnv(t)
	e.seedUsuario("admin@charlotte.com", "V2000001", true)
	admin := e.login("admin@charlotte.com")

	w := e.do(http.MethodPost, "/api/seguridad/restaurants", admin, gin.H{"latitude": 10.0, "longitud": -66.0, "radius": 0.5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	inside := gin.H{"latitude": 10.001, "longitude": -66.0}
	w = e.do(http.MethodPost, "/api/seguridad/auth/verify-location", "", inside)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_inside"])

	// moving the venue must invalidate the cached config
	w = e.do(http.MethodPatch, "/api/seguridad/restaurants", admin, gin.H{"latitude": 20.0, "longitud": -70.0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/seguridad/auth/verify-location", "", inside)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["is_inside"])
}

func TestIntegration_DuplicateEmailIsConflict(t *testing.T) {
	e := newContainerEnv(t)
	e.seedUsuario("admin@charlotte.com", "V2000010", true)
	admin := e.login("admin@charlotte.com")

	body := gin.H{
		"name": "Ana", "lastName": "Pérez", "email": "ana@charlotte.com", "dni": "V2000011",
		"password": "Segura123", "birthDate": "1995-05-05",
	}
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/api/seguridad/users", admin, body).Code)

	body["dni"] = "V2000012"
	body["email"] = "ANA@charlotte.com"
	assert.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/api/seguridad/users", admin, body).Code)
}
