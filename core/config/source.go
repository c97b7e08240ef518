package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

const (
	// EnvPrefix namespaces every environment variable read by EnvSource.
	EnvPrefix = "APP__"

	// SecretKeyEnv carries the secret key text.
	SecretKeyEnv = EnvPrefix + "SECRET_KEY"

	// LegacyPortEnv overrides the port after every other layer.
	LegacyPortEnv = "PORT"

	// LegacySSREnv overrides the SSR switch after every other layer.
	LegacySSREnv = "INERTIA_SSR"

	// DefaultDir is where file sources are looked up.
	DefaultDir = "config"

	// DefaultDotEnv is the .env file merged under the process environment.
	DefaultDotEnv = ".env"
)

// FileExtensions lists the supported file formats in lookup order.
var FileExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// Source applies one configuration layer onto the record. Fields the layer
// does not mention must be left untouched.
type Source func(*Settings) error

// FileSource decodes the first existing file among base+FileExtensions.
// A missing file is not an error.
func FileSource(base string) Source {
	return func(s *Settings) error {
		for _, ext := range FileExtensions {
			path := base + ext
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidFile, path, err)
			}
			if err := decodeFile(ext, data, s); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidFile, path, err)
			}
			return nil
		}
		return nil
	}
}

func decodeFile(ext string, data []byte, s *Settings) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch ext {
	case ".toml":
		return toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, s)
	case ".json":
		return json.Unmarshal(data, s)
	}
	return fmt.Errorf("unsupported file extension %q", ext)
}

// EnvSource overrides fields from APP__-prefixed variables in environ.
// Unset and empty variables leave the field untouched, except APP__SECRET_KEY:
// set but empty, it asks for a generated key like "generate" does.
func EnvSource(environ map[string]string) Source {
	return func(s *Settings) error {
		err := env.ParseWithOptions(s, env.Options{
			Prefix:      EnvPrefix,
			Environment: environ,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEnv, err)
		}
		if v, ok := environ[SecretKeyEnv]; ok && strings.TrimSpace(v) == "" {
			s.SecretKey = secretkey.GenerateToken
		}
		return nil
	}
}

// LegacySource applies the unprefixed PORT and INERTIA_SSR overrides.
// Values that do not parse are ignored, matching the hosting platforms that set them.
func LegacySource(environ map[string]string) Source {
	return func(s *Settings) error {
		if v, ok := environ[LegacyPortEnv]; ok {
			if port, err := strconv.ParseUint(strings.TrimSpace(v), 10, 16); err == nil {
				s.Port = uint16(port)
			}
		}
		if v, ok := environ[LegacySSREnv]; ok {
			if sw, err := ParseSSRSwitch(v); err == nil && sw != SSRAuto {
				s.SSR = sw
			}
		}
		return nil
	}
}

// Environment returns the process environment merged over the given .env file.
// Process variables win; the process environment itself is not modified.
// An empty path skips the .env file.
func Environment(dotenv string) (map[string]string, error) {
	process := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			process[k] = v
		}
	}
	return mergeDotEnv(dotenv, process)
}

// mergeDotEnv reads the .env file at path and overlays environ on top of it.
func mergeDotEnv(path string, environ map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(environ))
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, path, err)
		default:
			for k, v := range values {
				merged[k] = v
			}
		}
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

// fileSources returns the base and local file layers for dir.
func fileSources(dir string) []Source {
	return []Source{
		FileSource(filepath.Join(dir, "default")),
		FileSource(filepath.Join(dir, "local")),
	}
}
