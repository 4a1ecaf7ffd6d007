package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient()
	assert.Equal(t, defaultClientTimeout, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultResponseHeaderTimeout, tr.ResponseHeaderTimeout)

	c = NewHTTPClient(WithTimeout(time.Second), WithResponseHeaderTimeout(-1))
	assert.Equal(t, time.Second, c.Timeout)
	assert.Equal(t, defaultResponseHeaderTimeout, c.Transport.(*http.Transport).ResponseHeaderTimeout)
}

func TestPostJSON(t *testing.T) {
	var gotTrace string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get(pkg.HeaderTraceId)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	resp, err := PostJSON(context.Background(), NewHTTPClient(), srv.URL, "", map[string]any{"AMT_CREDIT": 1000})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Len(t, gotTrace, 36)
	assert.Equal(t, 1000.0, gotBody["AMT_CREDIT"])
}
