package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

const cacheSchemaURL = "https://demosdk.local/schemas/docs-index.json"

// cacheSchema describes the cache file: an object of per-kind arrays whose
// records carry at least a non-empty name.
const cacheSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "classes":    {"$ref": "#/$defs/collection"},
    "interfaces": {"$ref": "#/$defs/collection"},
    "functions":  {"$ref": "#/$defs/collection"},
    "enums":      {"$ref": "#/$defs/collection"},
    "types":      {"$ref": "#/$defs/collection"},
    "variables":  {"$ref": "#/$defs/collection"}
  },
  "$defs": {
    "collection": {
      "type": ["array", "null"],
      "items": {"$ref": "#/$defs/entry"}
    },
    "entry": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "type":        {"type": "string"},
        "name":        {"type": "string", "minLength": 1},
        "fullName":    {"type": "string"},
        "description": {"type": "string"},
        "content":     {"type": "string"},
        "filePath":    {"type": "string"},
        "returns":     {"type": "string"},
        "methods":     {"type": ["array", "null"], "items": {"$ref": "#/$defs/named"}},
        "properties":  {"type": ["array", "null"], "items": {"$ref": "#/$defs/named"}},
        "parameters":  {"type": ["array", "null"], "items": {"$ref": "#/$defs/named"}}
      }
    },
    "named": {
      "type": "object",
      "properties": {"name": {"type": "string"}}
    }
  }
}`

var compiledCacheSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(cacheSchema))
	if err != nil {
		return nil, fmt.Errorf("parse cache schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(cacheSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add cache schema: %w", err)
	}
	return compiler.Compile(cacheSchemaURL)
})

// FileCache persists a documentation index as a single JSON file.
type FileCache struct {
	path string
}

// NewFileCache returns a cache stored at path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the cache file location.
func (c *FileCache) Path() string {
	return c.path
}

// Load reads the cached index. It returns ErrCacheNotFound when the file does not
// exist and ErrCacheInvalid when it cannot be decoded or does not match the cache layout.
func (c *FileCache) Load() (*docs.Index, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCacheNotFound, c.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", c.path, err)
	}

	if err := validateCache(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCacheInvalid, c.path, err)
	}

	index := docs.NewIndex()
	if err := json.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCacheInvalid, c.path, err)
	}
	return index, nil
}

func validateCache(data []byte) error {
	schema, err := compiledCacheSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

// Save writes index to the cache file, creating parent directories. The file is
// replaced atomically so readers never see a partial cache.
func (c *FileCache) Save(index *docs.Index) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docs-index-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}
