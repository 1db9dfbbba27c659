package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/katalvlaran/warpsync/distance"
	"github.com/katalvlaran/warpsync/dtw"
)

//go:embed sample_config.toml
var sampleConfig string

// Alignment contains the DTW engine settings.
type Alignment struct {
	Metric       string  `toml:"metric"`
	Pattern      string  `toml:"pattern"`
	Window       int     `toml:"window"`
	SlopePenalty float64 `toml:"slope_penalty"`
	Workers      int     `toml:"workers"`
	Wavefront    bool    `toml:"wavefront"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Output controls how results are rendered.
type Output struct {
	// Format is "auto" (table on a terminal, JSON otherwise), "table" or "json".
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for warpsync.
//
// Configuration sections:
//   - Alignment: metric, step pattern, window, slope penalty, parallelism
//   - Logging: log level and format
//   - Output: result rendering
type Config struct {
	Alignment Alignment `toml:"alignment"`
	Logging   Logging   `toml:"logging"`
	Output    Output    `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.Alignment.Metric = strings.ToLower(strings.TrimSpace(c.Alignment.Metric))
	c.Alignment.Pattern = strings.ToLower(strings.TrimSpace(c.Alignment.Pattern))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Alignment.Metric == "" {
		c.Alignment.Metric = defaultMetric
	}
	if c.Alignment.Pattern == "" {
		c.Alignment.Pattern = defaultPattern
	}
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
}

// AlignOptions converts the alignment section into dtw options.
func (c *Config) AlignOptions() ([]dtw.Option, error) {
	metric, err := distance.ParseMetric(c.Alignment.Metric)
	if err != nil {
		return nil, fmt.Errorf("alignment.metric: %w", err)
	}
	pattern, err := dtw.ParsePattern(c.Alignment.Pattern)
	if err != nil {
		return nil, fmt.Errorf("alignment.pattern: %w", err)
	}

	return []dtw.Option{
		dtw.WithMetric(metric),
		dtw.WithPattern(pattern),
		dtw.WithWindow(c.Alignment.Window),
		dtw.WithSlopePenalty(c.Alignment.SlopePenalty),
		dtw.WithWorkers(c.Alignment.Workers),
		dtw.WithWavefront(c.Alignment.Wavefront),
	}, nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	return sb.String(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for the CLI.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
