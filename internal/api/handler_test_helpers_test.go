package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fmardones/reparto-api/internal/api/shared"
	"github.com/fmardones/reparto-api/internal/service/auth"
)

// doRequest runs a request through the given handler (normally a chi
// router carrying the route under test) and returns the recorder.
func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// doAuthRequest is doRequest with claims preloaded into the context, as
// the auth middleware would do for a valid token.
func doAuthRequest(t *testing.T, handler http.Handler, method, path string, body any, claims *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), shared.ClaimsContextKey, claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope unmarshals the standard response envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()
	var env shared.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

// decodeData re-marshals the envelope's data field into out, so tests
// can read typed entities out of the generic envelope.
func decodeData(t *testing.T, env shared.Envelope, out any) {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
