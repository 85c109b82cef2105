package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	// A failing client keeps the pipeline on its deterministic fallbacks.
	pipeline := core.NewPipeline(&core.MockLLMClient{Err: fmt.Errorf("offline")}, config.Default())
	return NewServerWith(pipeline).SetupRouter()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const importBody = `[
	{"id": "f1", "text": "The dashboard is too slow", "role": "Data Analyst"},
	{"id": "f2", "text": "I love the new design", "role": "Data Analyst"}
]`

func TestImport(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodPost, "/import", importBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var reply map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "success", reply["status"])
	assert.Equal(t, float64(5), reply["nodes"])
	assert.Equal(t, float64(6), reply["links"])
	assert.Equal(t, float64(2), reply["feedback"])
}

func TestImport_InvalidBody(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodPost, "/import", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadEndpointsBeforeImport(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{"/export", "/graph", "/insights", "/analytics"} {
		w := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestExportAfterImport(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/import", importBody).Code)

	w := doRequest(r, http.MethodGet, "/export", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc["nodes"], 5)
	assert.Len(t, doc["links"], 6)
	assert.Len(t, doc["feedbackItems"], 2)

	analytics, ok := doc["analytics"].(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, "1.0", analytics["exportVersion"])
		assert.NotEmpty(t, analytics["exportDate"])
	}
}

func TestImportReplacesSnapshot(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/import", importBody).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/import", `[{"id": "g1", "text": "only one now"}]`).Code)

	w := doRequest(r, http.MethodGet, "/analytics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var snap map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, float64(1), snap["totalFeedback"])
}
