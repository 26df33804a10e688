package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
)

func TestHTTPServer(t *testing.T) {
	t.Parallel()

	s := &HTTPServer{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{MetricsAddr: ":0"},
	}
	require.NoError(t, s.Init(t.Context()))

	ts := httptest.NewServer(s.srv.Handler)
	t.Cleanup(ts.Close)

	for path, body := range map[string]string{
		"/health":  `{"status":"ok"}`,
		"/metrics": "go_goroutines",
	} {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)

		data, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Contains(t, string(data), body)
	}
}
