package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/hookrelay/pkg/clientip"
	"github.com/dmitrymomot/hookrelay/pkg/logger"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	trusting := clientip.NewResolver("CF-Connecting-IP", "x-forwarded-for", " ")

	tests := []struct {
		name       string
		resolver   clientip.Resolver
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "zero value ignores headers",
			resolver:   clientip.Resolver{},
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			remoteAddr: "10.0.0.1:5000",
			want:       "10.0.0.1",
		},
		{
			name:       "first trusted header wins",
			resolver:   trusting,
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.195", "X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:5000",
			want:       "203.0.113.195",
		},
		{
			name:       "forwarded list yields first valid entry",
			resolver:   trusting,
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178 , 203.0.113.195"},
			remoteAddr: "10.0.0.1:5000",
			want:       "198.51.100.178",
		},
		{
			name:       "invalid headers fall back to remote addr",
			resolver:   trusting,
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "X-Forwarded-For": ""},
			remoteAddr: "192.0.2.10:443",
			want:       "192.0.2.10",
		},
		{
			name:       "ipv6 remote addr",
			resolver:   clientip.Resolver{},
			remoteAddr: "[2001:db8::1]:8080",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv4 mapped address is unmapped",
			resolver:   trusting,
			headers:    map[string]string{"X-Forwarded-For": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:5000",
			want:       "192.0.2.1",
		},
		{
			name:       "zone is dropped",
			resolver:   clientip.Resolver{},
			remoteAddr: "[fe80::1%eth0]:80",
			want:       "fe80::1",
		},
		{
			name:       "remote addr without port",
			resolver:   clientip.Resolver{},
			remoteAddr: "192.0.2.44",
			want:       "192.0.2.44",
		},
		{
			name:       "nothing valid",
			resolver:   clientip.Resolver{},
			remoteAddr: "unix-socket",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.resolver.Resolve(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.NewResolver("X-Real-IP").Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.9", got)
	assert.Empty(t, clientip.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(clientip.LoggerExtractor()))

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.1"), "with ip")
	assert.Contains(t, buf.String(), `"client_ip":"192.0.2.1"`)

	buf.Reset()
	log.InfoContext(context.Background(), "without ip")
	assert.NotContains(t, buf.String(), "client_ip")
}

func TestConfig_Resolver(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	req.Header.Set("X-Forwarded-For", "203.0.113.5")

	assert.Equal(t, "203.0.113.5", clientip.Config{TrustedHeaders: []string{"X-Forwarded-For"}}.Resolver().Resolve(req))
	assert.Equal(t, "10.0.0.1", clientip.Config{}.Resolver().Resolve(req))
}
