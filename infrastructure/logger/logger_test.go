package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFileOutput(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "engine.log")
	errFile := filepath.Join(dir, "error.log")

	log, err := New(Config{
		Level:      "debug",
		Outputs:    []string{"file"},
		OutputFile: outFile,
		ErrorFile:  errFile,
		Format:     "json",
	})
	require.NoError(t, err)

	log.LogQuote("generated", "q-1", map[string]interface{}{"bid": "99.9", "ask": "100.1"})
	log.LogError(errors.New("feed down"), map[string]interface{}{"instrument": "BTC-USD"})
	require.NoError(t, log.Close())

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "quote_event")
	assert.Contains(t, string(raw), `"quote_id":"q-1"`)

	// 错误文件只收 error 及以上
	errRaw, err := os.ReadFile(errFile)
	require.NoError(t, err)
	assert.Contains(t, string(errRaw), "feed down")
	assert.NotContains(t, string(errRaw), "quote_event")

	// 每行都应是合法 JSON
	var line map[string]interface{}
	first := string(raw[:indexByte(raw, '\n')])
	assert.NoError(t, json.Unmarshal([]byte(first), &line))
	assert.Equal(t, "generated", line["event"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", Outputs: []string{"stdout"}})
	assert.Error(t, err)
}

func TestWithFieldsIsolated(t *testing.T) {
	log := NewNop()
	child := log.WithFields(map[string]interface{}{"instrument": "ETH-USD"})
	assert.NotSame(t, log, child)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, []string{"stdout"}, cfg.Outputs)
	assert.Equal(t, "json", cfg.Format)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return len(b)
}
