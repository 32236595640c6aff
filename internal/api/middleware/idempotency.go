package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"loan-ledger/internal/domain/identity"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	idempotencyReplayedHeader = "Idempotent-Replayed"

	// provisionalLockTTL bounds how long an unfinished request holds its key.
	provisionalLockTTL = 60 * time.Second
	maxIdempotencyKey  = 255
	storeTimeout       = 2 * time.Second
	maxIdempotentBody  = 1 << 20
)

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

// Idempotency replays the first completed response for a repeated Idempotency-Key.
// Keys are scoped by owner, method and path. Requests without the header pass through.
type Idempotency struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewIdempotency returns a middleware that is a no-op when client is nil.
func NewIdempotency(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Idempotency {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Idempotency{client: client, ttl: ttl, logger: logger.With("component", "Idempotency")}
}

func (m *Idempotency) Middleware(next http.Handler) http.Handler {
	if m.client == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		idemKey := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if idemKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len(idemKey) > maxIdempotencyKey {
			writeError(w, http.StatusBadRequest, "invalid_argument", "Idempotency-Key is too long")
			return
		}

		var body []byte
		if r.Body != nil {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large")
					return
				}
				writeError(w, http.StatusBadRequest, "invalid_argument", "Failed to read request body")
				return
			}
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		bhash := bodyHash(body)

		ownerID := int64(0)
		if owner, ok := identity.OwnerFromContext(r.Context()); ok {
			ownerID = owner.ID
		}
		key := buildKey(ownerID, r.Method, r.URL.Path, idemKey)

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		ok, err := m.provisionalSet(ctx, key, idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: time.Now().UTC()})
		if err != nil {
			m.logger.ErrorContext(r.Context(), "Idempotency store unavailable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "unavailable", "idempotency store unavailable")
			return
		}
		if !ok {
			m.replayOrReject(ctx, w, r, key, bhash)
			return
		}

		var buf bytes.Buffer
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&buf)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(r.Context()), storeTimeout)
		defer storeCancel()

		if status >= http.StatusInternalServerError {
			if err := m.client.Del(storeCtx, key).Err(); err != nil {
				m.logger.WarnContext(r.Context(), "Failed to release idempotency key", "error", err)
			}
			return
		}
		final := idempEntry{Code: status, Body: buf.Bytes(), BodySHA256: bhash, CreatedAt: time.Now().UTC()}
		if err := m.saveFinal(storeCtx, key, final); err != nil {
			m.logger.WarnContext(r.Context(), "Failed to store idempotent response", "error", err)
		}
	})
}

func (m *Idempotency) replayOrReject(ctx context.Context, w http.ResponseWriter, r *http.Request, key, bhash string) {
	cur, err := m.loadEntry(ctx, key)
	if err != nil {
		m.logger.WarnContext(r.Context(), "Failed to load idempotency entry", "key", key, "error", err)
		writeError(w, http.StatusConflict, "conflict", "request is already in progress")
		return
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
		writeError(w, http.StatusConflict, "conflict", "Idempotency-Key reused with a different body")
		return
	}
	if cur.InProgress || cur.Code == 0 {
		writeError(w, http.StatusConflict, "conflict", "request is already in progress")
		return
	}

	m.logger.InfoContext(r.Context(), "Replaying idempotent response", "key", key, "status", cur.Code)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(idempotencyReplayedHeader, "true")
	w.WriteHeader(cur.Code)
	w.Write(cur.Body)
}

func (m *Idempotency) provisionalSet(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return m.client.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (m *Idempotency) saveFinal(ctx context.Context, key string, e idempEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, key, payload, m.ttl).Err()
}

func (m *Idempotency) loadEntry(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	raw, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return e, fmt.Errorf("idempotency entry %s expired", key)
		}
		return e, err
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return e, err
	}
	return e, nil
}

func buildKey(ownerID int64, method, path, idemKey string) string {
	return fmt.Sprintf("idempotency:%d:%s:%s:%s", ownerID, method, path, idemKey)
}

func bodyHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
