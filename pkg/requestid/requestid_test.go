package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hookrelay/pkg/logger"
	"github.com/dmitrymomot/hookrelay/pkg/requestid"
)

func serve(t *testing.T, header string) (ctxID, respID string) {
	t.Helper()

	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/relay/1/token", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware_Generates(t *testing.T) {
	t.Parallel()

	ctxID, respID := serve(t, "")
	assert.NotEmpty(t, ctxID)
	assert.Equal(t, ctxID, respID)

	other, _ := serve(t, "")
	assert.NotEqual(t, ctxID, other)
}

func TestMiddleware_ReusesValidIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"abc123",
		"test-request-id",
		"ABC-123_xyz",
		"550e8400-e29b-41d4-a716-446655440000",
		strings.Repeat("a", 128),
	} {
		ctxID, respID := serve(t, id)
		assert.Equal(t, id, ctxID)
		assert.Equal(t, id, respID)
	}
}

func TestMiddleware_ReplacesInvalidIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"test@request#id",
		"test request id",
		"test/request/id",
		"test<script>alert(1)</script>",
		strings.Repeat("a", 129),
	} {
		ctxID, respID := serve(t, id)
		assert.NotEmpty(t, ctxID, id)
		assert.NotEqual(t, id, ctxID)
		assert.Equal(t, ctxID, respID)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithContext(context.Background(), "test-id")
	assert.Equal(t, "test-id", requestid.FromContext(ctx))
	assert.Empty(t, requestid.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-42"), "submitted")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	log.InfoContext(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")
}
