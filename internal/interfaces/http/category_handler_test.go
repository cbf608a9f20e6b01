package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/application/usecase"
	apphttp "github.com/jhoicas/categories-api/internal/interfaces/http"
	"github.com/jhoicas/categories-api/internal/testutils"
	"github.com/jhoicas/categories-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const frozenTimestamp = "2025-06-14T00:00:00Z"

type testApp struct {
	app       *fiber.App
	store     *testutils.Store
	clock     *clockwork.FakeClock
	companyID string
}

// buildTestApp arma la app completa (middlewares + router) sobre el store en memoria
// con el reloj congelado en 2025-06-14T00:00:00Z y una empresa creada.
func buildTestApp(t *testing.T) *testApp {
	t.Helper()
	store := testutils.NewStore()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	log := logger.Nop()

	companyUC := usecase.NewCompanyUseCase(store.Companies(), clock)
	company, err := companyUC.Create(context.Background(), dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(store.Categories(), store.TxRunner(), clock),
		CompanyUC:  companyUC,
		HealthUC:   usecase.NewHealthUseCase(store, time.Second),
		AppName:    "categories-api",
		Logger:     log,
	})
	return &testApp{app: app, store: store, clock: clock, companyID: company.ID.String()}
}

// do lanza la petición y devuelve status y cuerpo.
func (ta *testApp) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (ta *testApp) createCategory(t *testing.T, name, parent string) map[string]any {
	t.Helper()
	body := `{"name": "` + name + `", "company": "` + ta.companyID + `"`
	if parent != "" {
		body += `, "parent_category": "` + parent + `"`
	}
	status, raw := ta.do(t, http.MethodPost, "/api/categories/", body+"}")
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[map[string]any](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_ListarPadreYDiezHijas(t *testing.T) {
	ta := buildTestApp(t)
	parent := ta.createCategory(t, "Raíz", "")
	parentID := parent["id"].(string)
	for i := 0; i < 10; i++ {
		ta.createCategory(t, "Hija", parentID)
	}

	status, raw := ta.do(t, http.MethodGet, "/api/categories/", "")

	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 11)
	assert.Equal(t, parentID, list[0]["id"])
	assert.Nil(t, list[0]["parent_category"])
	for _, item := range list {
		assert.Equal(t, ta.companyID, item["company"])
		assert.Equal(t, frozenTimestamp, item["created_at"])
		assert.Equal(t, frozenTimestamp, item["updated_at"])
	}
	for _, child := range list[1:] {
		assert.Equal(t, parentID, child["parent_category"])
		assert.Equal(t, "Hija", child["name"])
	}
}

func TestCategories_ListaVacia(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCategories_Obtener(t *testing.T) {
	ta := buildTestApp(t)
	created := ta.createCategory(t, "Bebidas", "")

	status, raw := ta.do(t, http.MethodGet, "/api/categories/"+created["id"].(string)+"/", "")

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode[map[string]any](t, raw))
}

func TestCategories_ObtenerInexistente(t *testing.T) {
	ta := buildTestApp(t)

	for _, id := range []string{"00000000-0000-0000-0000-000000000009", "no-es-uuid", "42"} {
		status, raw := ta.do(t, http.MethodGet, "/api/categories/"+id+"/", "")
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, raw).Code)
	}
}

func TestCategories_CrearDevuelveRepresentacion(t *testing.T) {
	ta := buildTestApp(t)

	created := ta.createCategory(t, "  Lácteos ", "")

	assert.Equal(t, "Lácteos", created["name"])
	assert.Equal(t, ta.companyID, created["company"])
	assert.Nil(t, created["parent_category"])
	assert.Equal(t, frozenTimestamp, created["created_at"])
	assert.Equal(t, frozenTimestamp, created["updated_at"])
	assert.Len(t, created, 6)
}

func TestCategories_CrearSinCamposRequeridos(t *testing.T) {
	ta := buildTestApp(t)

	cases := map[string]struct {
		body   string
		fields []string
	}{
		"sin name":    {`{"company": "` + ta.companyID + `"}`, []string{"name"}},
		"sin company": {`{"name": "A"}`, []string{"company"}},
		"vacío":       {`{}`, []string{"name", "company"}},
		"name null":   {`{"name": null, "company": "` + ta.companyID + `"}`, []string{"name"}},
		"name número": {`{"name": 1, "company": "` + ta.companyID + `"}`, []string{"name"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, raw := ta.do(t, http.MethodPost, "/api/categories/", tc.body)

			require.Equal(t, http.StatusBadRequest, status, string(raw))
			resp := decode[dto.ErrorResponse](t, raw)
			assert.Equal(t, apphttp.CodeValidation, resp.Code)
			for _, field := range tc.fields {
				assert.NotEmpty(t, resp.Fields[field], field)
			}
		})
	}
	assert.Equal(t, 0, ta.store.CategoryCount())
}

func TestCategories_CrearEmpresaInexistente(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodPost, "/api/categories/",
		`{"name": "A", "company": "00000000-0000-0000-0000-000000000009"}`)

	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, raw).Fields["company"])
	assert.Equal(t, 0, ta.store.CategoryCount())
}

func TestCategories_CuerpoInvalido(t *testing.T) {
	ta := buildTestApp(t)

	for _, body := range []string{`no es json`, `[1, 2]`, `null`} {
		status, raw := ta.do(t, http.MethodPost, "/api/categories/", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeInvalidBody, decode[dto.ErrorResponse](t, raw).Code)
	}
}

func TestCategories_PatchActualizaNombre(t *testing.T) {
	ta := buildTestApp(t)
	created := ta.createCategory(t, "Viejo", "")
	ta.clock.Advance(time.Second)

	status, raw := ta.do(t, http.MethodPatch, "/api/categories/"+created["id"].(string)+"/", `{"name": "Nuevo"}`)

	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[map[string]any](t, raw)
	assert.Equal(t, "Nuevo", updated["name"])
	assert.Equal(t, created["created_at"], updated["created_at"])
	assert.Equal(t, "2025-06-14T00:00:01Z", updated["updated_at"])
}

func TestCategories_PatchQuitaPadre(t *testing.T) {
	ta := buildTestApp(t)
	parent := ta.createCategory(t, "Padre", "")
	child := ta.createCategory(t, "Hija", parent["id"].(string))

	status, raw := ta.do(t, http.MethodPatch, "/api/categories/"+child["id"].(string), `{"parent_category": null}`)

	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Nil(t, decode[map[string]any](t, raw)["parent_category"])
}

func TestCategories_PatchCiclo(t *testing.T) {
	ta := buildTestApp(t)
	parent := ta.createCategory(t, "Padre", "")
	child := ta.createCategory(t, "Hija", parent["id"].(string))

	status, raw := ta.do(t, http.MethodPatch, "/api/categories/"+parent["id"].(string)+"/",
		`{"parent_category": "`+child["id"].(string)+`"}`)

	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, raw).Fields["parent_category"])
}

func TestCategories_PatchInexistente(t *testing.T) {
	ta := buildTestApp(t)

	status, _ := ta.do(t, http.MethodPatch, "/api/categories/00000000-0000-0000-0000-000000000009/", `{"name": "x"}`)

	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategories_ActualizarInexistenteConCuerpoInvalido(t *testing.T) {
	ta := buildTestApp(t)
	path := "/api/categories/00000000-0000-0000-0000-000000000009/"

	for _, body := range []string{`{"name": 5}`, `{"name": ""}`, `{"parent_category": 1}`} {
		status, raw := ta.do(t, http.MethodPatch, path, body)
		assert.Equal(t, http.StatusNotFound, status, body)
		assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, raw).Code, body)
	}

	status, _ := ta.do(t, http.MethodPut, path, `{"name": 5}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategories_PatchTipoInvalido(t *testing.T) {
	ta := buildTestApp(t)
	created := ta.createCategory(t, "A", "")

	status, raw := ta.do(t, http.MethodPatch, "/api/categories/"+created["id"].(string)+"/", `{"name": 5}`)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{dto.MsgInvalidType}, decode[dto.ErrorResponse](t, raw).Fields["name"])
}

func TestCategories_NombreConCaracterNulo(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodPost, "/api/categories/",
		`{"name": "a\u0000b", "company": "`+ta.companyID+`"}`)

	require.Equal(t, http.StatusBadRequest, status, string(raw))
	assert.Equal(t, []string{dto.MsgNullCharacter}, decode[dto.ErrorResponse](t, raw).Fields["name"])
	assert.Equal(t, 0, ta.store.CategoryCount())

	created := ta.createCategory(t, "A", "")
	status, _ = ta.do(t, http.MethodPatch, "/api/categories/"+created["id"].(string)+"/", `{"name": "x\u0000"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCategories_PutRequiereCamposCompletos(t *testing.T) {
	ta := buildTestApp(t)
	created := ta.createCategory(t, "A", "")
	path := "/api/categories/" + created["id"].(string) + "/"

	status, raw := ta.do(t, http.MethodPut, path, `{"name": "B"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, raw).Fields["company"])

	status, raw = ta.do(t, http.MethodPut, path, `{"name": "B", "company": "`+ta.companyID+`"}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "B", decode[map[string]any](t, raw)["name"])
}

func TestCategories_EliminarYLuego404(t *testing.T) {
	ta := buildTestApp(t)
	created := ta.createCategory(t, "Temporal", "")
	path := "/api/categories/" + created["id"].(string) + "/"

	status, raw := ta.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, _ = ta.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ta.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategories_ErrorInternoDevuelve500(t *testing.T) {
	ta := buildTestApp(t)
	ta.store.Err = assert.AnError

	status, raw := ta.do(t, http.MethodGet, "/api/categories/", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apphttp.CodeInternal, decode[dto.ErrorResponse](t, raw).Code)
}

func TestRutaInexistente(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodGet, "/api/otra/", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, raw).Code)
}
