package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthHandler_Root(t *testing.T) {
	h := NewHealthHandler(&stubPinger{}, "test", nil)

	rec := doRequest(t, http.HandlerFunc(h.Root), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rootResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "🚀 API funcionando correctamente", resp.Message)
	assert.Equal(t, "test", resp.Environment)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHealthHandler_Health(t *testing.T) {
	testCases := []struct {
		name         string
		pingErr      error
		wantDatabase string
	}{
		{name: "database reachable", pingErr: nil, wantDatabase: "connected"},
		{name: "database down", pingErr: errors.New("connection refused"), wantDatabase: "disconnected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(&stubPinger{err: tc.pingErr}, "test", nil)

			rec := doRequest(t, http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp healthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, tc.wantDatabase, resp.Database)
			assert.GreaterOrEqual(t, resp.Uptime, 0.0)
		})
	}
}
