//go:build integration

package router

// End-to-end tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"testing"

	"catalogo/internal/config"
	"catalogo/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupE2E(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("catalogo_test"),
		tcPostgres.WithUsername("catalogo"),
		tcPostgres.WithPassword("catalogo"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "production",
		DBDriver:           infra.DriverPostgres,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		RateLimitPerMinute: rateLimit,
		CORSOrigins:        "http://localhost:3000",
	}

	store, err := infra.OpenStore(cfg.DBDriver, cfg.DatabaseURL, cfg.DataFile)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return New(cfg, store, rdb)
}

func TestE2E_CatalogoPostgres(t *testing.T) {
	r := setupE2E(t, 1000)

	w, _ := do(t, r, http.MethodPost, "/categorias", `{"nombre":"Bebidas"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/productos", colaJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := dataObj(t, env)
	assert.Equal(t, 1.5, p["precio"])
	assert.Equal(t, true, p["disponible"])

	w, env = do(t, r, http.MethodPost, "/productos", colaJSON)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.Len(t, env.Details, 1)

	w, env = do(t, r, http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "categoriaId", env.Errors[0]["field"])

	w, env = do(t, r, http.MethodGet, "/productos?disponible=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, env), 1)

	w, _ = do(t, r, http.MethodDelete, "/productos/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestE2E_RateLimiterRedis(t *testing.T) {
	r := setupE2E(t, 3)

	for i := 0; i < 3; i++ {
		w, _ := do(t, r, http.MethodGet, "/categorias", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, env := do(t, r, http.MethodGet, "/categorias", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, env.Success)
}
