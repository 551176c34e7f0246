package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"catalogo/internal/config"
	"catalogo/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  []map[string]any    `json:"errors"`
	Details []map[string]string `json:"details"`
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		RateLimitPerMinute: 1000,
		CORSOrigins:        "http://localhost:3000",
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := repository.NewFileStore(filepath.Join(t.TempDir(), "catalogo.json"))
	require.NoError(t, err)
	return New(testConfig(), store, nil)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func dataObj(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func dataList(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &l))
	return l
}

const colaJSON = `{"nombre":"Cola","precio":1.5,"descripcion":"Bebida carbonatada sabor cola","categoria":"Bebidas"}`

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCatalogoHTTP_FlujoCompleto(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/categorias", `{"nombre":"Bebidas"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Categoría creada exitosamente", env.Message)
	assert.Equal(t, float64(1), dataObj(t, env)["id"])

	w, env = do(t, r, http.MethodPost, "/productos", colaJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Producto creado exitosamente", env.Message)
	p := dataObj(t, env)
	assert.Equal(t, float64(1), p["id"])
	assert.Equal(t, 1.5, p["precio"], "precio is a JSON number")
	assert.Equal(t, true, p["disponible"])
	assert.Equal(t, float64(1), p["categoria_id"])
	assert.NotEmpty(t, p["fecha_ingreso"])

	w, env = do(t, r, http.MethodPost, "/productos", strings.Replace(colaJSON, `"Cola"`, `"cola"`, 1))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	require.Len(t, env.Details, 1)
	assert.Equal(t, map[string]string{"field": "nombre", "value": "cola", "resource": "producto"}, env.Details[0])

	w, env = do(t, r, http.MethodGet, "/productos/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Se ha encontrado el producto 'Cola'", env.Message)

	w, env = do(t, r, http.MethodPatch, "/productos/1", `{"disponible":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataObj(t, env)["disponible"])

	w, env = do(t, r, http.MethodGet, "/productos/disponibles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Empty(t, dataList(t, env))
	assert.Equal(t, "No se han encontrado productos disponibles.", env.Message)

	w, env = do(t, r, http.MethodGet, "/productos?disponible=FALSE", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, env), 1)
	assert.Equal(t, "Productos no disponibles encontrados.", env.Message)

	w, env = do(t, r, http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "categoriaId", env.Errors[0]["field"])

	w, env = do(t, r, http.MethodDelete, "/productos/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Producto eliminado exitosamente", env.Message)

	w, _ = do(t, r, http.MethodDelete, "/productos/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCrearProductoHTTP_Validacion(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/productos", `{"nombre":"Cola","precio":0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Error de validación", env.Message)
	require.Len(t, env.Errors, 3)
	assert.Equal(t, "precio", env.Errors[0]["field"])
	assert.Equal(t, float64(0), env.Errors[0]["received"])
}

func TestCrearProductoHTTP_CategoriaInexistente(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/productos", colaJSON)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Categoría 'Bebidas' no encontrada.", env.Message)
}

func TestHTTP_JSONInvalido(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/categorias", `{"nombre":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "body", env.Errors[0]["field"])
}

func TestHTTP_CuerpoVacioReportaRequeridos(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/categorias", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "nombre", env.Errors[0]["field"])
	assert.Equal(t, "El nombre es requerido", env.Errors[0]["message"])
}

func TestHTTP_IDInvalido(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/productos/abc", "/productos/0", "/categorias/-1"} {
		w, env := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Len(t, env.Errors, 1, path)
		assert.Equal(t, "id", env.Errors[0]["field"])
	}
}

func TestHTTP_ParametroDisponibleInvalido(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/productos?disponible=quizas", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "disponible", env.Errors[0]["field"])
	assert.Equal(t, "Parámetro inválido: quizas", env.Errors[0]["message"])
}

func TestHTTP_ListadosVacios(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/productos", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "No se han encontrado productos.", env.Message)
	assert.Equal(t, "[]", string(env.Data))

	w, env = do(t, r, http.MethodGet, "/categorias", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "No hay categorías", env.Message)
}

func TestCategoriasHTTP_CRUD(t *testing.T) {
	r := newTestEngine(t)

	w, _ := do(t, r, http.MethodPost, "/categorias", `{"nombre":"Bebidas"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/categorias", `{"nombre":"BEBIDAS"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "categoria", env.Details[0]["resource"])

	w, env = do(t, r, http.MethodGet, "/categorias/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Categoría con ID 1 encontrada", env.Message)

	w, env = do(t, r, http.MethodPut, "/categorias/1", `{"nombre":"Refrescos"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Refrescos", dataObj(t, env)["nombre"])

	w, env = do(t, r, http.MethodGet, "/categorias/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Categoría con ID 9 no encontrada", env.Message)

	w, env = do(t, r, http.MethodGet, "/categorias", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Categorías encontradas", env.Message)
	assert.Len(t, dataList(t, env), 1)
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["db"])
	assert.Equal(t, "disabled", body["redis"])
}
