// Package config loads datadash settings from datadash.yaml, DATADASH_*
// environment variables and built-in defaults.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/dashboard"
	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/tooltip"
)

type Config struct {
	Animation   AnimationConfig   `mapstructure:"animation"`
	Chart       ChartConfig       `mapstructure:"chart"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Interaction InteractionConfig `mapstructure:"interaction"`
	Render      RenderConfig      `mapstructure:"render"`
	Server      ServerConfig      `mapstructure:"server"`
	Snapshot    SnapshotConfig    `mapstructure:"snapshot"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type AnimationConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	FPS      int           `mapstructure:"fps"`
}

type ChartConfig struct {
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	BarMargin float64 `mapstructure:"bar_margin"`
	Padding   float64 `mapstructure:"padding"`
}

type ColorsConfig struct {
	Palette []string `mapstructure:"palette"`
}

type InteractionConfig struct {
	LineTolerance  float64       `mapstructure:"line_tolerance"`
	RadarTolerance float64       `mapstructure:"radar_tolerance"`
	HideDelay      time.Duration `mapstructure:"hide_delay"`
}

type RenderConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type SnapshotConfig struct {
	Width   int `mapstructure:"width"`
	Height  int `mapstructure:"height"`
	Quality int `mapstructure:"quality"`
}

type LoggingConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Load reads datadash.yaml from the usual places. A missing file is not an
// error; defaults and the environment still apply.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("datadash")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".datadash"))
	v.AddConfigPath("/etc/datadash")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads the given file, which must exist.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Default returns the built-in settings, ignoring files and the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DATADASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sanitize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("animation.duration", anim.DefaultDuration)
	v.SetDefault("animation.fps", anim.DefaultFPS)

	v.SetDefault("chart.width", chart.DefaultWidth)
	v.SetDefault("chart.height", chart.DefaultHeight)
	v.SetDefault("chart.bar_margin", 10)
	v.SetDefault("chart.padding", 30)

	v.SetDefault("colors.palette", palette.Default)

	v.SetDefault("interaction.line_tolerance", 5)
	v.SetDefault("interaction.radar_tolerance", 10)
	v.SetDefault("interaction.hide_delay", tooltip.DefaultHideDelay)

	v.SetDefault("render.concurrency", 4)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("snapshot.width", 1280)
	v.SetDefault("snapshot.height", 800)
	v.SetDefault("snapshot.quality", 90)

	v.SetDefault("logging.verbose", false)
}

// sanitize replaces values that would stall rendering.
func (c *Config) sanitize() {
	if c.Animation.FPS <= 0 {
		c.Animation.FPS = anim.DefaultFPS
	}
	if c.Animation.Duration < 0 {
		c.Animation.Duration = 0
	}
	if c.Render.Concurrency <= 0 {
		c.Render.Concurrency = 1
	}
	if c.Snapshot.Quality <= 0 || c.Snapshot.Quality > 100 {
		c.Snapshot.Quality = 90
	}
}

// ChartSettings converts the chart and interaction keys.
func (c *Config) ChartSettings() chart.Settings {
	return chart.Settings{
		Duration:       c.Animation.Duration,
		BarMargin:      c.Chart.BarMargin,
		Padding:        c.Chart.Padding,
		LineTolerance:  c.Interaction.LineTolerance,
		RadarTolerance: c.Interaction.RadarTolerance,
		Palette:        palette.New(c.Colors.Palette),
	}
}

func (c *Config) TooltipOptions() []tooltip.Option {
	return []tooltip.Option{
		tooltip.WithHideDelay(c.Interaction.HideDelay),
		tooltip.WithViewport(tooltip.Viewport{
			Width:  float64(c.Snapshot.Width),
			Height: float64(c.Snapshot.Height),
		}),
	}
}

// PageOptions configures a dashboard page. Warnings go to logger.
func (c *Config) PageOptions(logger *log.Logger) []dashboard.Option {
	return []dashboard.Option{
		dashboard.WithSettings(c.ChartSettings()),
		dashboard.WithSize(c.Chart.Width, c.Chart.Height),
		dashboard.WithConcurrency(c.Render.Concurrency),
		dashboard.WithTooltip(c.TooltipOptions()...),
		dashboard.WithLogger(logger),
		dashboard.WithTrace(c.Trace()),
	}
}

// Driver returns the frame clock for live rendering.
func (c *Config) Driver() *anim.Driver {
	return anim.NewDriver(c.Animation.FPS)
}

// Trace returns the frame-level logger: stderr when verbose, silent
// otherwise.
func (c *Config) Trace() *log.Logger {
	var w io.Writer = io.Discard
	if c.Logging.Verbose {
		w = os.Stderr
	}
	return log.New(w, "", log.LstdFlags)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
