package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/warpsync/internal/config"
	"github.com/katalvlaran/warpsync/internal/logging"
)

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "rows", 3)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "rows=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "JSON", Writer: &buf})
	require.NoError(t, err)

	logger.Info("aligned", "distance", 1.5)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "aligned", rec["msg"])
	assert.Equal(t, 1.5, rec["distance"])
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "console"})
	require.Error(t, err)

	_, err = logging.New(logging.Options{Level: "verbose"})
	require.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg, &buf)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	logger, err = logging.NewFromConfig(nil, &buf)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
