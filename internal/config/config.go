package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Chart      ChartConfig      `mapstructure:"chart"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Source     SourceConfig     `mapstructure:"source"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Mode   string `mapstructure:"mode"` // "debug" selects the development logger
	APIKey string `mapstructure:"api_key"`
}

// ChartConfig holds the presentation settings of the PnL charts.
type ChartConfig struct {
	InitialCapital float64    `mapstructure:"initial_capital"`
	DrawdownBand   BandConfig `mapstructure:"drawdown_band"`
	Stop           StopConfig `mapstructure:"stop"`
}

// BandConfig maps drawdowns onto a fixed display band: zero drawdown
// plots at Center, the maximum at Center - FullScale.
type BandConfig struct {
	Center    float64 `mapstructure:"center"`
	FullScale float64 `mapstructure:"full_scale"`
}

// StopConfig holds the stop level drawn on the drawdown chart.
type StopConfig struct {
	Amount float64 `mapstructure:"amount"`
	Mode   string  `mapstructure:"mode"` // "absolute" or "relative"
}

// SimulationConfig holds Monte Carlo settings.
type SimulationConfig struct {
	Profiles []ProfileConfig `mapstructure:"profiles"`
	Seed     *uint64         `mapstructure:"seed"` // nil = seed from time; 0 is a valid seed
}

type ProfileConfig struct {
	Name  string  `mapstructure:"name"`
	Bound float64 `mapstructure:"bound"`
}

// SourceConfig selects where trades come from.
type SourceConfig struct {
	Type    string        `mapstructure:"type"` // "mock" or "file"
	Path    string        `mapstructure:"path"` // For file
	Latency time.Duration `mapstructure:"latency"`
}

type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig tunes the zap logger. Empty values keep the preset.
type LogConfig struct {
	Level    string `mapstructure:"level"`    // debug, info, warn, error
	Encoding string `mapstructure:"encoding"` // json or console
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	// Decoding merges into existing slices element-wise; configured
	// profiles replace the defaults instead.
	if v.IsSet("simulation.profiles") {
		cfg.Simulation.Profiles = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Chart: ChartConfig{
			DrawdownBand: BandConfig{
				Center:    1000,
				FullScale: 400,
			},
			Stop: StopConfig{
				Amount: 300,
				Mode:   "absolute",
			},
		},
		Simulation: SimulationConfig{
			Profiles: []ProfileConfig{
				{Name: "Conservative", Bound: 0.05},
				{Name: "Modest", Bound: 0.15},
				{Name: "Aggressive", Bound: 0.30},
			},
		},
		Source: SourceConfig{
			Type: "mock",
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "./data/archive",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Chart validation
	if c.Chart.DrawdownBand.FullScale < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("drawdown_band.full_scale cannot be negative, got %f", c.Chart.DrawdownBand.FullScale))
	}
	switch c.Chart.Stop.Mode {
	case "", "absolute", "relative":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("stop.mode must be absolute or relative, got %q", c.Chart.Stop.Mode))
	}

	// Simulation validation
	if len(c.Simulation.Profiles) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("simulation needs at least one profile"))
	}
	for _, p := range c.Simulation.Profiles {
		if p.Bound < 0 || p.Bound > 1 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("profile %s: bound must be between 0 and 1, got %f", p.Name, p.Bound))
		}
	}

	// Source validation
	switch c.Source.Type {
	case "", "mock":
	case "file":
		if c.Source.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("source path required when type is file"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown source type %q", c.Source.Type))
	}

	// Log validation
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding))
	}

	// Archive validation - only checked when snapshots are enabled
	if c.Archive.Enabled {
		switch c.Archive.Type {
		case "localfs":
			if c.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive path required when type is localfs"))
			}
		case "s3":
			if c.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required when archive type is s3"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown archive type %q", c.Archive.Type))
		}
	}

	return nil
}
