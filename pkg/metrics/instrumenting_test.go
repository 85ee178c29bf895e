package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	ctx := context.Background()

	e, err := SetupInstrumentation("127.0.0.1:0", "ethmiddleware-test")
	require.NoError(t, err)
	defer func() { require.NoError(t, e.Close(ctx)) }()

	require.Len(t, BaseAttrs, 2)
	require.Equal(t, "ethmiddleware-test", BaseAttrs[0].Value.AsString())

	resp, err := http.Get("http://" + e.Addr() + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "process_runtime_go_goroutines")
	require.Contains(t, string(body), `service_name="ethmiddleware-test"`)

	health, err := http.Get("http://" + e.Addr() + "/healthz")
	require.NoError(t, err)
	require.NoError(t, health.Body.Close())
	require.Equal(t, http.StatusOK, health.StatusCode)
}
