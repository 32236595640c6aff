package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/identity"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testOwnerID = int64(1)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// newRequest builds a request authenticated as testOwnerID with the given chi URL params.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := identity.WithOwner(req.Context(), identity.Owner{ID: testOwnerID, Email: "shop@example.com"})
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func anonymous(req *http.Request) *http.Request {
	return req.WithContext(context.Background())
}

// decodeData unmarshals a success envelope and its data into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) dto.Envelope {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if out != nil {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return dto.Envelope{Success: raw.Success, Message: raw.Message}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
