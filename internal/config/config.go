package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"rasterfit/pkg/utils"
)

// EnvPrefix is prepended to every environment override, e.g.
// RASTERFIT_INPUT_X or RASTERFIT_FIT_PARALLEL.
const EnvPrefix = "RASTERFIT"

type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Mask   MaskConfig   `mapstructure:"mask"`
	Fit    FitConfig    `mapstructure:"fit"`
	Render RenderConfig `mapstructure:"render"`
	Report ReportConfig `mapstructure:"report"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type InputConfig struct {
	X          string `mapstructure:"x"`
	Y          string `mapstructure:"y"`
	SkipNoData bool   `mapstructure:"skip_nodata"`
}

type MaskConfig struct {
	Path string `mapstructure:"path"`
	Use  bool   `mapstructure:"use"`
	// Value selects mask cells equal to it; nil selects any non-zero cell.
	Value *float64 `mapstructure:"value"`
}

type FitConfig struct {
	Parallel     bool    `mapstructure:"parallel"`
	Significance float64 `mapstructure:"significance"`
}

type RenderConfig struct {
	// Out is the static plot; the extension picks the format.
	Out string `mapstructure:"out"`
	// HTML is an optional interactive page.
	HTML     string  `mapstructure:"html"`
	Points   int     `mapstructure:"points"`
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

type ReportConfig struct {
	CSV  string `mapstructure:"csv"`
	JSON string `mapstructure:"json"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	APIKey  string `mapstructure:"api_key"`
	GinMode string `mapstructure:"gin_mode"`
}

// LogConfig overrides the process logger. Empty keys leave LOG_FILE and
// LOG_LEVEL in charge.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.x", "")
	v.SetDefault("input.y", "")
	v.SetDefault("input.skip_nodata", true)
	v.SetDefault("mask.path", "")
	v.SetDefault("mask.use", false)
	v.SetDefault("fit.parallel", false)
	v.SetDefault("fit.significance", 0.05)
	v.SetDefault("render.out", "out/bestfit.png")
	v.SetDefault("render.html", "")
	v.SetDefault("render.points", 300)
	v.SetDefault("render.width_in", 8.0)
	v.SetDefault("render.height_in", 6.0)
	v.SetDefault("report.csv", "")
	v.SetDefault("report.json", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "")
}

// Load layers defaults, the optional config file at path, a .env file,
// RASTERFIT_* environment variables and finally overrides (dotted keys, as
// set from command-line flags).
func Load(path string, overrides map[string]any) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("mask.value"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	return &cfg, nil
}

// ValidateAnalysis checks what a single raster comparison needs and reports
// every problem at once.
func (c *Config) ValidateAnalysis() error {
	var err error
	if c.Input.X == "" {
		err = multierr.Append(err, errors.New("input.x is required"))
	}
	if c.Input.Y == "" {
		err = multierr.Append(err, errors.New("input.y is required"))
	}
	if c.Mask.Use && c.Mask.Path == "" {
		err = multierr.Append(err, errors.New("mask.path is required when mask.use is set"))
	}
	return multierr.Append(err, c.validateFit())
}

// ValidateServer checks the HTTP API settings.
func (c *Config) ValidateServer() error {
	var err error
	if c.Server.Port == "" {
		err = multierr.Append(err, errors.New("server.port is required"))
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		err = multierr.Append(err, fmt.Errorf("server.gin_mode %q must be debug, release or test", c.Server.GinMode))
	}
	return multierr.Append(err, c.validateFit())
}

func (c *Config) validateFit() error {
	var err error
	if !(c.Fit.Significance > 0 && c.Fit.Significance < 1) {
		err = multierr.Append(err, fmt.Errorf("fit.significance must be in (0, 1), got %v", c.Fit.Significance))
	}
	if c.Render.Points < 2 {
		err = multierr.Append(err, fmt.Errorf("render.points must be at least 2, got %d", c.Render.Points))
	}
	if c.Render.WidthIn <= 0 || c.Render.HeightIn <= 0 {
		err = multierr.Append(err, errors.New("render.width_in and render.height_in must be positive"))
	}
	return err
}

// MaskPath is the mask to apply, or "" when masking is off.
func (c *Config) MaskPath() string {
	if !c.Mask.Use {
		return ""
	}
	return c.Mask.Path
}

// FlagOverrides maps the flags explicitly set on fs to config keys, ready to
// pass to Load. Flags missing from keys are ignored.
func FlagOverrides(fs *flag.FlagSet, keys map[string]string) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := keys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

// LogConfigured reports whether a log key was set through the config.
func (c *Config) LogConfigured() bool {
	return c.Log.File != "" || c.Log.Level != ""
}

// LogOptions resolves the logger settings, falling back to LOG_FILE and
// LOG_LEVEL for keys the config leaves empty.
func (c *Config) LogOptions() utils.LogOptions {
	opts := utils.LogOptions{File: c.Log.File, Level: c.Log.Level}
	if opts.File == "" {
		opts.File = os.Getenv("LOG_FILE")
	}
	if opts.Level == "" {
		opts.Level = os.Getenv("LOG_LEVEL")
	}
	return opts
}
