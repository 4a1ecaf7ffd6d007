package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T, status int) (*httptest.Server, *map[string]any) {
	t.Helper()
	received := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/predict":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Header().Set(pkg.HeaderTraceId, r.Header.Get(pkg.HeaderTraceId))
			w.WriteHeader(status)
			if status == http.StatusOK {
				_, _ = w.Write([]byte(`{"status":"Success","prediction_prob":0.03,"top_3_reason_codes":{"EXT_SOURCE_3":-0.33}}`))
				return
			}
			_, _ = w.Write([]byte(`{"code":"APP_VALIDATION","message":"request validation failed"}`))
		case "/health":
			_, _ = w.Write([]byte(`{"status":"ok","features":10}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestPredict_DefaultSample(t *testing.T) {
	srv, received := newTestServer(t, http.StatusOK)
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"risk-cli", "--url", srv.URL, "predict"})
	require.NoError(t, err)

	assert.Equal(t, "Higher education", (*received)["NAME_EDUCATION_TYPE"])
	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "Success", body["status"])
}

func TestPredict_FileAndYAML(t *testing.T) {
	srv, received := newTestServer(t, http.StatusOK)
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"AMT_CREDIT": 5000, "Client_Age": 40}`), 0o600))
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"risk-cli", "--url", srv.URL + "/", "--format", "yaml", "predict", "--file", path})
	require.NoError(t, err)

	assert.Equal(t, 5000.0, (*received)["AMT_CREDIT"])
	var body map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "Success", body["status"])
}

func TestPredict_ErrorStatus(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnprocessableEntity)
	var out bytes.Buffer

	err := newApp(&out).Run([]string{"risk-cli", "--url", srv.URL, "predict"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, out.String(), "APP_VALIDATION")
}

func TestPredict_BadFile(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	err := newApp(&bytes.Buffer{}).Run([]string{"risk-cli", "--url", srv.URL, "predict", "--file", path})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	var out bytes.Buffer

	require.NoError(t, newApp(&out).Run([]string{"risk-cli", "--url", srv.URL, "health"}))
	assert.Contains(t, out.String(), `"status": "ok"`)
}

func TestUnsupportedFormat(t *testing.T) {
	err := newApp(&bytes.Buffer{}).Run([]string{"risk-cli", "--format", "xml", "health"})
	assert.Error(t, err)
}
