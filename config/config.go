// Package config holds the file-based configuration for the strandd
// demo server.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticMount maps a URL prefix to a directory on disk.
type StaticMount struct {
	Prefix string `yaml:"prefix"`
	Dir    string `yaml:"dir"`
}

// Logging holds the log output settings.
type Logging struct {
	// Level is the minimum level to output: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is the output format: text or json.
	Format string `yaml:"format"`
}

// Config is the strandd server configuration.
type Config struct {
	// Listen is the address the HTTP listener binds to.
	Listen string `yaml:"listen"`

	// Logging configures the slog output.
	Logging Logging `yaml:"logging"`

	// Static lists the directories served as static mounts.
	Static []StaticMount `yaml:"static"`

	// Fallback overrides the body returned for unmatched requests.
	// When empty, the engine default is used.
	Fallback string `yaml:"fallback"`
}

// Default returns sensible defaults for the demo server.
func Default() Config {
	return Config{
		Listen: ":8080",
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file over the defaults. Unknown fields are
// an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Logger builds a slog.Logger for the configured level and format,
// writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch c.Logging.Level {
	case "", "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch c.Logging.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
}
