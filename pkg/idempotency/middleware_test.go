package idempotency

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	seen bool
	err  error
}

func (c *stubChecker) Seen(context.Context, string) (bool, error) { return c.seen, c.err }

func serve(t *testing.T, checker Checker, key string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	if key != "" {
		req.Header.Set(Header, key)
	}
	rec := httptest.NewRecorder()
	Middleware(checker, slog.New(slog.DiscardHandler))(next).ServeHTTP(rec, req)
	return rec, called
}

func TestMiddleware_NilCheckerPassesThrough(t *testing.T) {
	t.Parallel()

	rec, called := serve(t, nil, "key-1")
	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMiddleware_MissingHeaderPassesThrough(t *testing.T) {
	t.Parallel()

	rec, called := serve(t, &stubChecker{seen: true}, "")
	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMiddleware_FreshKeyPassesThrough(t *testing.T) {
	t.Parallel()

	rec, called := serve(t, &stubChecker{seen: false}, "key-1")
	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMiddleware_ReplayedKeyConflicts(t *testing.T) {
	t.Parallel()

	rec, called := serve(t, &stubChecker{seen: true}, "key-1")
	assert.False(t, called)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate request")
}

func TestMiddleware_CheckerFailurePassesThrough(t *testing.T) {
	t.Parallel()

	rec, called := serve(t, &stubChecker{err: errors.New("redis down")}, "key-1")
	assert.True(t, called, "a replay guard outage must not block checkouts")
	assert.Equal(t, http.StatusCreated, rec.Code)
}
