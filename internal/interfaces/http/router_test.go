package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/dto"
)

func TestAPIRoot_URLsAbsolutas(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodGet, "/api/", "")

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"categories": "http://example.com/api/categories/",
		"companies": "http://example.com/api/companies/"
	}`, string(raw))
}

func TestHealth(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"categories-api","database":"ok"}`, string(raw))

	ta.store.Err = assert.AnError
	status, raw = ta.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", decode[map[string]string](t, raw)["database"])
}

func TestCompanies_CrearListarObtener(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodPost, "/api/companies/", `{"name": "Globex"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[map[string]any](t, raw)
	assert.Equal(t, "Globex", created["name"])
	assert.Equal(t, frozenTimestamp, created["created_at"])

	status, raw = ta.do(t, http.MethodGet, "/api/companies/", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, ta.companyID, list[0]["id"])
	assert.Equal(t, created["id"], list[1]["id"])

	status, raw = ta.do(t, http.MethodGet, "/api/companies/"+created["id"].(string)+"/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode[map[string]any](t, raw))
}

func TestCompanies_Errores(t *testing.T) {
	ta := buildTestApp(t)

	status, raw := ta.do(t, http.MethodPost, "/api/companies/", `{"name": ""}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{dto.MsgRequired}, decode[dto.ErrorResponse](t, raw).Fields["name"])

	status, raw = ta.do(t, http.MethodPost, "/api/companies/", `{"name": "Acme\u0000"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{dto.MsgNullCharacter}, decode[dto.ErrorResponse](t, raw).Fields["name"])

	status, _ = ta.do(t, http.MethodGet, "/api/companies/00000000-0000-0000-0000-000000000009/", "")
	assert.Equal(t, http.StatusNotFound, status)
}
