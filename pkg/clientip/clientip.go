package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver determines the originating client address of a request.
// The zero value trusts no headers and uses the TCP peer address only.
type Resolver struct {
	headers []string
}

// NewResolver returns a Resolver that consults headers in order before
// falling back to RemoteAddr. Only list headers set by a proxy you control:
// clients can forge any of them.
func NewResolver(headers ...string) Resolver {
	hs := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			hs = append(hs, http.CanonicalHeaderKey(h))
		}
	}
	return Resolver{headers: hs}
}

// Resolve returns the normalized client IP, or "" when none is valid.
// Comma-separated header values (X-Forwarded-For) yield their first valid entry.
func (res Resolver) Resolve(r *http.Request) string {
	for _, h := range res.headers {
		for part := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
