package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)
	log.Debug("hidden")
	log.Info("server starting", "port", "8080")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "server starting", line["msg"])
	assert.Equal(t, "8080", line["port"])
}

func TestDevLogsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("dev", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
