package inbound_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hookrelay/pkg/clientip"
	"github.com/dmitrymomot/hookrelay/pkg/deadletter"
	"github.com/dmitrymomot/hookrelay/pkg/httpserver"
	"github.com/dmitrymomot/hookrelay/pkg/inbound"
	"github.com/dmitrymomot/hookrelay/pkg/logger"
	"github.com/dmitrymomot/hookrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/hookrelay/pkg/relay"
	"github.com/dmitrymomot/hookrelay/pkg/requestid"
)

type submission struct {
	dest    relay.Destination
	payload string
}

// fakeSubmitter records submissions and can be switched to reject them.
type fakeSubmitter struct {
	mu     sync.Mutex
	subs   []submission
	err    error
	accept int // submissions accepted before err applies
	closed bool
}

func (f *fakeSubmitter) Submit(dest relay.Destination, payload relay.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil && len(f.subs) >= f.accept {
		return f.err
	}
	f.subs = append(f.subs, submission{dest: dest, payload: string(payload)})
	return nil
}

func (f *fakeSubmitter) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSubmitter) all() []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submission(nil), f.subs...)
}

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

func newRouter(t *testing.T, s inbound.Submitter, opts ...inbound.Option) http.Handler {
	t.Helper()
	opts = append([]inbound.Option{inbound.WithLogger(logger.Discard()), inbound.WithClock(fixedNow)}, opts...)
	h, err := inbound.NewHandler(s, opts...)
	require.NoError(t, err)
	return h.Router()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_NilSubmitter(t *testing.T) {
	t.Parallel()

	h, err := inbound.NewHandler(nil)
	require.ErrorIs(t, err, inbound.ErrNilSubmitter)
	assert.Nil(t, h)
}

func TestRelay_SubmitsTranslatedPayload(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	router := newRouter(t, sub)

	rec := do(router, http.MethodPost, "/relay/123/abc-token",
		`{"attachments":[{"title":"one","color":"good"},{"title":"two"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submitted 2 embeds", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	subs := sub.all()
	require.Len(t, subs, 1)
	assert.Equal(t, relay.Destination{ID: "123", Token: "abc-token"}, subs[0].dest)
	assert.JSONEq(t, `{"embeds":[
		{"timestamp":"2024-05-01T12:30Z","title":"one","color":3061894},
		{"timestamp":"2024-05-01T12:30Z","title":"two"}
	]}`, subs[0].payload)
}

func TestRelay_SplitsIntoOrderedPayloads(t *testing.T) {
	t.Parallel()

	parts := make([]string, 0, 12)
	for i := range 12 {
		parts = append(parts, fmt.Sprintf(`{"title":"t%d"}`, i))
	}

	sub := &fakeSubmitter{}
	rec := do(newRouter(t, sub), http.MethodPost, "/relay/1/t", `{"attachments":[`+strings.Join(parts, ",")+`]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submitted 12 embeds", rec.Body.String())

	subs := sub.all()
	require.Len(t, subs, 2)
	assert.Contains(t, subs[0].payload, `"t0"`)
	assert.Contains(t, subs[1].payload, `"t11"`)
}

func TestRelay_EmptyMessageSubmitsNothing(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	rec := do(newRouter(t, sub), http.MethodPost, "/relay/1/t", `{"attachments":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submitted 0 embeds", rec.Body.String())
	assert.Empty(t, sub.all())
}

func TestRelay_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		sub      *fakeSubmitter
		wantCode int
	}{
		{"invalid json", http.MethodPost, "/relay/1/t", `{"attachments":`, &fakeSubmitter{}, http.StatusBadRequest},
		{"not an object", http.MethodPost, "/relay/1/t", `[1,2]`, &fakeSubmitter{}, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/relay/1/t", ``, &fakeSubmitter{}, http.StatusMethodNotAllowed},
		{"missing token", http.MethodPost, "/relay/1", `{}`, &fakeSubmitter{}, http.StatusNotFound},
		{"extra segment", http.MethodPost, "/relay/1/t/x", `{}`, &fakeSubmitter{}, http.StatusNotFound},
		{"registry closed", http.MethodPost, "/relay/1/t", `{"text":"x"}`, &fakeSubmitter{err: relay.ErrRegistryClosed}, http.StatusServiceUnavailable},
		{"submit failure", http.MethodPost, "/relay/1/t", `{"text":"x"}`, &fakeSubmitter{err: errors.New("boom")}, http.StatusInternalServerError},
		{"body too large", http.MethodPost, "/relay/1/t", `{"text":"` + strings.Repeat("x", 200) + `"}`, &fakeSubmitter{}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(t, tt.sub, inbound.WithMaxBodyBytes(100))
			rec := do(router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Empty(t, tt.sub.all())
		})
	}
}

func TestRelay_PartialSubmitReportsQueuedPayloads(t *testing.T) {
	t.Parallel()

	parts := make([]string, 0, 25)
	for i := range 25 {
		parts = append(parts, fmt.Sprintf(`{"title":"t%d"}`, i))
	}
	body := `{"attachments":[` + strings.Join(parts, ",") + `]}`

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		wantLog  string
	}{
		{"registry closed", relay.ErrRegistryClosed, http.StatusServiceUnavailable,
			"relay is shutting down (1 of 3 payloads already queued)", `"level":"WARN"`},
		{"submit failure", errors.New("boom"), http.StatusInternalServerError,
			"failed to submit payload (1 of 3 payloads already queued)", `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf syncBuffer
			sub := &fakeSubmitter{err: tt.err, accept: 1}
			router := newRouter(t, sub, inbound.WithLogger(logger.New(logger.WithOutput(&buf))))

			rec := do(router, http.MethodPost, "/relay/1/t", body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			require.Len(t, sub.all(), 1)
			assert.Contains(t, sub.all()[0].payload, `"t0"`)
			assert.Contains(t, buf.String(), `"queued":1`)
			assert.Contains(t, buf.String(), `"payloads":3`)
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	var redisDown bool
	var mu sync.Mutex
	router := newRouter(t, sub, inbound.WithReadyChecks(httpserver.Check{
		Name: "redis",
		Fn: func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			if redisDown {
				return errors.New("down")
			}
			return nil
		},
	}))

	rec := do(router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = do(router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	mu.Lock()
	redisDown = true
	mu.Unlock()
	rec = do(router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	mu.Lock()
	redisDown = false
	mu.Unlock()
	sub.mu.Lock()
	sub.closed = true
	sub.mu.Unlock()
	rec = do(router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}

type staticStats relay.Stats

func (s staticStats) Stats() relay.Stats { return relay.Stats(s) }

func TestStats(t *testing.T) {
	t.Parallel()

	router := newRouter(t, &fakeSubmitter{}, inbound.WithStats(staticStats{Destinations: 2, Submitted: 7, Delivered: 5}))

	rec := do(router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got relay.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Destinations)
	assert.Equal(t, uint64(7), got.Submitted)
	assert.Equal(t, uint64(5), got.Delivered)
}

func TestOptionalRoutesAreNotMounted(t *testing.T) {
	t.Parallel()

	router := newRouter(t, &fakeSubmitter{})
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/stats", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/deadletters", "").Code)
}

func TestConfig_AdminRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      inbound.Config
		wantCode int
	}{
		{"off by default", inbound.Config{}, http.StatusNotFound},
		{"enabled", inbound.Config{AdminRoutes: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter(t, &fakeSubmitter{}, append(tt.cfg.Options(),
				inbound.WithStats(staticStats{}),
				inbound.WithDeadLetters(deadletter.NewMemoryStore()),
			)...)

			assert.Equal(t, tt.wantCode, do(router, http.MethodGet, "/stats", "").Code)
			assert.Equal(t, tt.wantCode, do(router, http.MethodGet, "/deadletters", "").Code)
			assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health/live", "").Code)
		})
	}
}

func TestDeadLetters(t *testing.T) {
	t.Parallel()

	store := deadletter.NewMemoryStore()
	for i := range 3 {
		require.NoError(t, store.Record(context.Background(), relay.DeadLetter{
			Destination: relay.Destination{ID: fmt.Sprintf("d%d", i), Token: "secret"},
			Payload:     relay.Payload(`{}`),
			StatusCode:  403,
			Reason:      errors.New("forbidden"),
			Attempts:    1,
		}))
	}
	router := newRouter(t, &fakeSubmitter{}, inbound.WithDeadLetters(store))

	rec := do(router, http.MethodGet, "/deadletters?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var entries []deadletter.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "d2", entries[0].DestinationID)
	assert.Equal(t, "d1", entries[1].DestinationID)

	rec = do(router, http.MethodGet, "/deadletters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 3)

	for _, bad := range []string{"0", "-1", "abc"} {
		rec = do(router, http.MethodGet, "/deadletters?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestRelay_EndToEndWithRegistry(t *testing.T) {
	t.Parallel()

	var (
		mu        sync.Mutex
		delivered []string
	)
	reg, err := relay.NewRegistry(relay.DelivererFunc(func(_ context.Context, dest relay.Destination, p relay.Payload, _ int) relay.Result {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, dest.ID+"|"+string(p))
		return relay.Result{Outcome: relay.Success, StatusCode: 204}
	}), relay.WithLogger(logger.Discard()))
	require.NoError(t, err)

	router := newRouter(t, reg, inbound.WithStats(reg))

	for i := range 3 {
		rec := do(router, http.MethodPost, "/relay/chan/tok", fmt.Sprintf(`{"text":"m%d"}`, i))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Eventually(t, func() bool { return reg.Stats().Delivered == 3 }, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{
		`chan|{"content":"m0"}`,
		`chan|{"content":"m1"}`,
		`chan|{"content":"m2"}`,
	}, delivered)
	mu.Unlock()

	require.NoError(t, reg.Close(context.Background()))
	rec := do(router, http.MethodPost, "/relay/chan/tok", `{"text":"late"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRelay_RateLimitedPerDestination(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.NewLimiter(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	sub := &fakeSubmitter{}
	router := newRouter(t, sub, inbound.WithRateLimiter(limiter))

	for range 2 {
		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/relay/a/t1", `{"text":"x"}`).Code)
	}
	rec := do(router, http.MethodPost, "/relay/a/t2", `{"text":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/relay/b/t1", `{"text":"x"}`).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health/live", "").Code)
	assert.Len(t, sub.all(), 3)
}

func TestRouter_ResolvesClientIP(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(clientip.LoggerExtractor()))
	h, err := inbound.NewHandler(&fakeSubmitter{},
		inbound.WithLogger(log),
		inbound.WithClientIP(clientip.NewResolver("X-Forwarded-For")),
	)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/relay/1/sekret-token", strings.NewReader(`not json`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), `"client_ip":"203.0.113.9"`)
	assert.NotContains(t, buf.String(), "sekret")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
