package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"cloud.google.com/go/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	t.Parallel()

	require.Equal(t, logging.Debug, levelToSeverity(zerolog.DebugLevel))
	require.Equal(t, logging.Info, levelToSeverity(zerolog.InfoLevel))
	require.Equal(t, logging.Warning, levelToSeverity(zerolog.WarnLevel))
	require.Equal(t, logging.Error, levelToSeverity(zerolog.ErrorLevel))
	require.Equal(t, logging.Alert, levelToSeverity(zerolog.FatalLevel))
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Config{Version: "v1.2.3", Output: &buf})
	l.Warn().Str("component", "nonce").Msg("resync")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	require.Equal(t, "WARNING", event["severity"])
	require.Equal(t, "v1.2.3", event["version"])
	require.Equal(t, "nonce", event["component"])
	require.Equal(t, "resync", event["message"])
	require.Contains(t, event, "goversion")
}
