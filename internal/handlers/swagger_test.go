package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/krishiseeds/catalog-service/docs"
)

func getDocs(t *testing.T, opts RouterOptions, path string) *httptest.ResponseRecorder {
	t.Helper()
	env := newTestEnv(t)
	router := SetupRouter(env.handler, opts)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// TestDocsServedWhenEnabled verifies the router mounts the swagger UI and
// serves the registered API document.
func TestDocsServedWhenEnabled(t *testing.T) {
	opts := RouterOptions{Logger: zerolog.Nop(), EnableDocs: true}

	w := getDocs(t, opts, "/docs/index.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w = getDocs(t, opts, "/docs/doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Seed Catalog API", info["title"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/search")
}

// TestDocsDisabled verifies no docs route exists when docs are turned off.
func TestDocsDisabled(t *testing.T) {
	opts := RouterOptions{Logger: zerolog.Nop()}

	for _, path := range []string{"/docs/index.html", "/docs/doc.json"} {
		t.Run(path, func(t *testing.T) {
			w := getDocs(t, opts, path)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	env := newTestEnv(t)
	for _, route := range SetupRouter(env.handler, opts).Routes() {
		assert.NotEqual(t, "/docs/*any", route.Path)
	}
}
