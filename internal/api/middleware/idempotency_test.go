package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"loan-ledger/internal/domain/identity"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

type countingHandler struct {
	calls  atomic.Int32
	status int
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := h.calls.Add(1)
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(h.status)
	w.Write([]byte(`{"call":` + string(rune('0'+n)) + `,"echo":` + string(body) + `}`))
}

func doIdempotent(t *testing.T, h http.Handler, ownerID int64, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	req = req.WithContext(identity.WithOwner(req.Context(), identity.Owner{ID: ownerID}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("replays the first response", func(t *testing.T) {
		_, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		first := doIdempotent(t, h, 1, "abc", `{"amount":"10"}`)
		second := doIdempotent(t, h, 1, "abc", `{"amount":"10"}`)

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, int32(1), next.calls.Load())
	})

	t.Run("oversized body is rejected before touching the store", func(t *testing.T) {
		mr, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		rec := doIdempotent(t, h, 1, "big", `{"itemDesc":"`+strings.Repeat("x", maxIdempotentBody)+`"}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, int32(0), next.calls.Load())
		assert.Empty(t, mr.Keys())
	})

	t.Run("different body under the same key conflicts", func(t *testing.T) {
		_, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		doIdempotent(t, h, 1, "abc", `{"amount":"10"}`)
		rec := doIdempotent(t, h, 1, "abc", `{"amount":"99"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, int32(1), next.calls.Load())
	})

	t.Run("keys are scoped per owner", func(t *testing.T) {
		_, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		doIdempotent(t, h, 1, "abc", `{}`)
		doIdempotent(t, h, 2, "abc", `{}`)

		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("in-flight key is rejected", func(t *testing.T) {
		mr, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		payload := `{"in_progress":true,"body_sha256":"` + bodyHash([]byte(`{}`)) + `"}`
		require.NoError(t, mr.Set(buildKey(1, http.MethodPost, "/loans", "abc"), payload))

		rec := doIdempotent(t, h, 1, "abc", `{}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Zero(t, next.calls.Load())
	})

	t.Run("server errors release the key", func(t *testing.T) {
		mr, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusInternalServerError}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		doIdempotent(t, h, 1, "abc", `{}`)

		assert.False(t, mr.Exists(buildKey(1, http.MethodPost, "/loans", "abc")))
		doIdempotent(t, h, 1, "abc", `{}`)
		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("stored entry expires after ttl", func(t *testing.T) {
		mr, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Minute, logger).Middleware(next)

		doIdempotent(t, h, 1, "abc", `{}`)
		mr.FastForward(2 * time.Minute)
		doIdempotent(t, h, 1, "abc", `{}`)

		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		_, rdb := newMiniredisClient(t)
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		doIdempotent(t, h, 1, "", `{}`)
		doIdempotent(t, h, 1, "", `{}`)

		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("nil client disables the middleware", func(t *testing.T) {
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(nil, time.Hour, logger).Middleware(next)

		doIdempotent(t, h, 1, "abc", `{}`)
		doIdempotent(t, h, 1, "abc", `{}`)

		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("store outage is reported", func(t *testing.T) {
		mr, rdb := newMiniredisClient(t)
		mr.Close()
		next := &countingHandler{status: http.StatusCreated}
		h := NewIdempotency(rdb, time.Hour, logger).Middleware(next)

		rec := doIdempotent(t, h, 1, "abc", `{}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Zero(t, next.calls.Load())
	})
}
