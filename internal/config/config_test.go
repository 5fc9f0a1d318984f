package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"DEMOSDK_DOCS_DIR", "DEMOSDK_INDEX_FILE", "DEMOSDK_API_REF_DIR", "DEMOSDK_SDK_PATH",
	"TYPEDOC_BIN", "TYPEDOC_TIMEOUT", "SERVER_MODE", "PORT", "LOG_LEVEL",
	"QDRANT_HOST", "QDRANT_PORT", "OPENAI_API_KEY", "GITHUB_TOKEN",
	"SDK_GITHUB_OWNER", "SDK_GITHUB_REPO", "SDK_GITHUB_PATH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.DocsDir)
	assert.Equal(t, filepath.Join("docs", "docs-index.json"), cfg.IndexFile)
	assert.Equal(t, filepath.Join("docs", "demosdk-api-ref"), cfg.APIRefDir)
	assert.Empty(t, cfg.SDKPath)
	assert.Equal(t, DefaultSDKCandidates, cfg.SDKCandidates)
	assert.Equal(t, filepath.Join("node_modules", ".bin", "typedoc"), cfg.TypeDocBin)
	assert.Equal(t, 60*time.Second, cfg.TypeDocTimeout)
	assert.False(t, cfg.ServerMode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.False(t, cfg.SemanticEnabled())
	assert.Equal(t, "kynesyslabs", cfg.SDKOwner)
	assert.Equal(t, "sdk", cfg.SDKRepo)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEMOSDK_DOCS_DIR", "/srv/docs")
	t.Setenv("DEMOSDK_API_REF_DIR", "/srv/ref")
	t.Setenv("DEMOSDK_SDK_PATH", "/srv/sdk")
	t.Setenv("TYPEDOC_TIMEOUT", "2m")
	t.Setenv("SERVER_MODE", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("QDRANT_HOST", "qdrant")
	t.Setenv("QDRANT_PORT", "7000")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/docs", "docs-index.json"), cfg.IndexFile)
	assert.Equal(t, "/srv/ref", cfg.APIRefDir)
	assert.Equal(t, []string{"/srv/sdk"}, cfg.SDKCandidates)
	assert.Equal(t, 2*time.Minute, cfg.TypeDocTimeout)
	assert.True(t, cfg.ServerMode)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 7000, cfg.QdrantPort)
	assert.True(t, cfg.SemanticEnabled())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"timeout", "TYPEDOC_TIMEOUT", "soon"},
		{"negative timeout", "TYPEDOC_TIMEOUT", "-1s"},
		{"port", "QDRANT_PORT", "six"},
		{"level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestResolveSDKPath(t *testing.T) {
	dir := t.TempDir()
	sdk := filepath.Join(dir, "demosdk")
	require.NoError(t, os.Mkdir(sdk, 0o755))

	cfg := &Config{SDKCandidates: []string{filepath.Join(dir, "missing"), sdk}}
	assert.Equal(t, sdk, cfg.ResolveSDKPath())

	cfg.SDKCandidates = []string{filepath.Join(dir, "missing")}
	assert.Empty(t, cfg.ResolveSDKPath())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "path", "a.html")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "path=a.html")
}
