package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	const origin = "https://gts.pkmnfoundations.org"

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"configured origin", []string{origin}, http.MethodGet, origin, http.StatusOK, origin},
		{"wildcard preflight", []string{" * "}, http.MethodOptions, origin, http.StatusNoContent, "*"},
		{"other origin", []string{"https://allowed.example.com"}, http.MethodGet, origin, http.StatusOK, ""},
		{"preflight from other origin", []string{"https://allowed.example.com"}, http.MethodOptions, origin, http.StatusNoContent, ""},
		{"no origin header", []string{origin}, http.MethodPost, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/terminal/box4", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllow == origin {
				require.Equal(t, "Origin", rec.Header().Get("Vary"))
				require.Equal(t, requestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/livez", "/readyz", " /HEALTHZ "} {
		require.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/stats", "/v1/gts/gen4/search", "/", "/v1/terminal/box4"} {
		require.True(t, shouldTraceRequest(path), path)
	}
}

func TestSpanRoute(t *testing.T) {
	tests := map[string]string{
		"/v1/gts/4/1000":                           "/v1/gts/4/{pid}",
		"/v1/gts/gen5/1000/history":                "/v1/gts/gen5/{pid}/history",
		"/v1/gts/4/search":                         "/v1/gts/4/search",
		"/v1/terminal/battlevideo4/0012-3456-7890": "/v1/terminal/battlevideo4/{serial}",
		"/v1/terminal/box4/77/saved":               "/v1/terminal/box4/{serial}/saved",
		"/v1/terminal/box4/count":                  "/v1/terminal/box4/count",
		"/v1/profiles/4/31":                        "/v1/profiles/4/{pid}",
		"/v1/facility/5/competitors":               "/v1/facility/5/competitors",
		"/healthz":                                 "/healthz",
	}
	for in, want := range tests {
		require.Equal(t, want, spanRoute(in), in)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(idgen.NewKSUIDGenerator(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Len(t, seen, 27)
	require.Equal(t, seen, rec.Header().Get(requestIDHeader))
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := chain(okHandler, tag("outer"), tag("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestRecoverPanic(t *testing.T) {
	h := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("corrupt box")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/terminal/box4/1", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internalError")

	abort := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestResolveClientIP(t *testing.T) {
	cases := map[string]struct {
		forwarded, realIP, remote string
		want                      string
	}{
		"forwarded chain":   {"203.0.113.7, 10.0.0.1", "", "10.0.0.1:5555", "203.0.113.7"},
		"real ip":           {"", "198.51.100.2", "10.0.0.1:5555", "198.51.100.2"},
		"garbage forwarded": {"unknown", "", "192.0.2.9:80", "192.0.2.9"},
		"mapped v6 peer":    {"", "", "[::ffff:192.0.2.1]:443", "192.0.2.1"},
		"nothing parseable": {"", "", "pipe", ""},
		"bracketed v6 peer": {"", "", "[2001:db8::1]:443", "2001:db8::1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
			r.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			require.Equal(t, tc.want, resolveClientIP(r))
		})
	}
}
