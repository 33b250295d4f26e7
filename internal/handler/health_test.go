package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker bool

func (f fakeChecker) IsReady() bool {
	return bool(f)
}

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name         string
		ready        bool
		requireReady bool
		wantCode     int
		wantStatus   string
	}{
		{"liveness while running", false, false, http.StatusOK, "UP"},
		{"readiness while running", false, true, http.StatusServiceUnavailable, "DOWN"},
		{"readiness when done", true, true, http.StatusOK, "UP"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthCheck(fakeChecker(tc.ready), tc.requireReady)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantStatus, body["status"])
		})
	}
}
