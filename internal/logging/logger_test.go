package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "json", &buf)
	require.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Info().Int("user_id", 7).Msg("user created")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "user created", entry["message"])
	require.EqualValues(t, 7, entry["user_id"])
	require.Contains(t, entry, "time")
}

func TestNewLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", "json", &buf)
	require.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Debug().Msg("hidden")
	require.Zero(t, buf.Len())
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "console", &buf)
	log.Warn().Msg("careful")
	require.Contains(t, buf.String(), "careful")
	require.Contains(t, buf.String(), "WRN")
}
