// Package config reads server and CLI settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bull/demosdk-docs-mcp/internal/github"
)

// Config holds settings for both binaries.
type Config struct {
	DocsDir       string
	IndexFile     string
	APIRefDir     string
	SDKPath       string // explicit SDK root; empty means search SDKCandidates
	SDKCandidates []string

	TypeDocBin     string
	TypeDocTimeout time.Duration

	ServerMode bool
	Port       string
	LogLevel   slog.Level

	QdrantHost string // empty disables semantic search
	QdrantPort int

	OpenAIAPIKey string
	GitHubToken  string

	SDKOwner    string
	SDKRepo     string
	SDKRepoPath string
}

// DefaultSDKCandidates are the install locations checked for the SDK, in order.
var DefaultSDKCandidates = []string{
	filepath.Join("node_modules", "@kynesyslabs", "demosdk"),
	filepath.Join("node_modules", "demosdk"),
}

// LoadDotEnv loads .env from the working directory when present. It reports whether
// a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() (*Config, error) {
	docsDir := getEnv("DEMOSDK_DOCS_DIR", "docs")

	cfg := &Config{
		DocsDir:      docsDir,
		IndexFile:    getEnv("DEMOSDK_INDEX_FILE", filepath.Join(docsDir, "docs-index.json")),
		APIRefDir:    getEnv("DEMOSDK_API_REF_DIR", filepath.Join(docsDir, "demosdk-api-ref")),
		SDKPath:      os.Getenv("DEMOSDK_SDK_PATH"),
		TypeDocBin:   getEnv("TYPEDOC_BIN", filepath.Join("node_modules", ".bin", "typedoc")),
		ServerMode:   getEnv("SERVER_MODE", "false") == "true",
		Port:         getEnv("PORT", "8080"),
		QdrantHost:   os.Getenv("QDRANT_HOST"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		SDKOwner:     getEnv("SDK_GITHUB_OWNER", github.DefaultOwner),
		SDKRepo:      getEnv("SDK_GITHUB_REPO", github.DefaultRepo),
		SDKRepoPath:  getEnv("SDK_GITHUB_PATH", github.DefaultBasePath),
	}

	cfg.SDKCandidates = DefaultSDKCandidates
	if cfg.SDKPath != "" {
		cfg.SDKCandidates = []string{cfg.SDKPath}
	}

	var err error
	if cfg.TypeDocTimeout, err = time.ParseDuration(getEnv("TYPEDOC_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("TYPEDOC_TIMEOUT: %w", err)
	}
	if cfg.TypeDocTimeout <= 0 {
		return nil, fmt.Errorf("TYPEDOC_TIMEOUT: must be positive")
	}
	if cfg.QdrantPort, err = strconv.Atoi(getEnv("QDRANT_PORT", "6334")); err != nil {
		return nil, fmt.Errorf("QDRANT_PORT: %w", err)
	}
	if cfg.LogLevel, err = ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveSDKPath returns the first candidate SDK directory that exists, or "".
func (c *Config) ResolveSDKPath() string {
	for _, p := range c.SDKCandidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return ""
}

// SemanticEnabled reports whether both the vector store and embeddings are configured.
func (c *Config) SemanticEnabled() bool {
	return c.QdrantHost != "" && c.OpenAIAPIKey != ""
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the configured level.
// The MCP server passes os.Stderr since stdout carries the stdio transport.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
