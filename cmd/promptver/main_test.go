package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveLevel(t *testing.T) {
	assert.Equal(t, "info", effectiveLevel("info", false))
	assert.Equal(t, "debug", effectiveLevel("info", true))
	assert.Equal(t, "trace", effectiveLevel("trace", true))
}

func TestConfigFileFromArgs(t *testing.T) {
	assert.Equal(t, "", configFileFromArgs([]string{"promptver", "resolve", "packs"}))
	assert.Equal(t, "a.yaml", configFileFromArgs([]string{"promptver", "--config", "a.yaml", "resolve"}))
	assert.Equal(t, "b.yaml", configFileFromArgs([]string{"promptver", "resolve", "--config=b.yaml"}))
	assert.Equal(t, "", configFileFromArgs([]string{"promptver", "--config"}))
}

func TestLogFormat(t *testing.T) {
	assert.Equal(t, "json", logFormat("json", os.Stderr.Fd()))
	assert.Equal(t, "text", logFormat("text", os.Stderr.Fd()))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "json", logFormat("", f.Fd()))
}

func TestLogWriter(t *testing.T) {
	out := &bytes.Buffer{}
	w, err := logWriter("json", out, "")
	require.NoError(t, err)
	logger := zerolog.New(w)
	logger.Info().Str("prompt", "summarize").Msg("resolved")
	assert.JSONEq(t, `{"level":"info","prompt":"summarize","message":"resolved"}`, out.String())

	out.Reset()
	logFile := filepath.Join(t.TempDir(), "promptver.log")
	w, err = logWriter("text", out, logFile)
	require.NoError(t, err)
	logger = zerolog.New(w)
	logger.Info().Msg("resolved")
	assert.Contains(t, out.String(), "resolved")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "resolved")

	_, err = logWriter("xml", out, "")
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	level := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	require.NoError(t, InitLogger(&logConfig{Level: "warn", LogFormat: "json"}))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, InitLogger(&logConfig{Level: "loud", LogFormat: "json"}))
	assert.Error(t, InitLogger(&logConfig{LogFormat: "xml"}))
}

func TestRootCommand(t *testing.T) {
	for _, path := range [][]string{
		{"resolve"},
		{"text"},
		{"versions"},
		{"schema"},
		{"make", "prompt"},
		{"tokens", "count"},
		{"tokens", "list-models"},
		{"tokens", "list-encodings"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
