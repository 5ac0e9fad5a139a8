package adminserver

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestAuthOrLocalOnly(t *testing.T) {
	t.Parallel()

	basic := func(u, p string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(u+":"+p))
	}

	tests := []struct {
		name   string
		cfg    Config
		remote string
		auth   string
		want   int
	}{
		{name: "loopback needs nothing", remote: "127.0.0.1:12345", want: http.StatusTeapot},
		{name: "ipv6 loopback", remote: "[::1]:12345", want: http.StatusTeapot},
		{name: "remote without configured creds", remote: "8.8.8.8:54444", auth: basic("u", "p"), want: http.StatusUnauthorized},
		{name: "remote wrong creds", cfg: Config{User: "u", Pass: "p"}, remote: "8.8.8.8:54444", auth: basic("u", "WRONG"), want: http.StatusUnauthorized},
		{name: "remote no creds", cfg: Config{User: "u", Pass: "p"}, remote: "8.8.8.8:54444", want: http.StatusUnauthorized},
		{name: "remote correct creds", cfg: Config{User: "u", Pass: "p"}, remote: "8.8.8.8:54444", auth: basic("u", "p"), want: http.StatusTeapot},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
			h := authOrLocalOnly(next, tt.cfg)

			req := httptest.NewRequest(http.MethodGet, "http://example/debug/pprof/", nil)
			req.RemoteAddr = tt.remote
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				require.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestHandler_MetricsIsOpen(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Add(3)

	h := Handler(Config{}, reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "10.0.0.7:9000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "tracking_test_total 3"))

	req = httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "10.0.0.7:9000"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "127.0.0.1:9000"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
