// Package config loads noisegen settings from flags, the environment and
// an optional noisegen.yaml file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, as in NOISEGEN_WIDTH.
const EnvPrefix = "NOISEGEN"

// Projections and gradients accepted by the render command.
var (
	Projections = []string{"plane", "cylinder", "sphere"}
	Gradients   = []string{"terrain", "grayscale"}
)

// Config represents the noisegen configuration.
type Config struct {
	Preset  string `mapstructure:"preset"`
	Seed    int32  `mapstructure:"seed"`
	Input   string `mapstructure:"input"`
	Output  string `mapstructure:"output"`
	Verbose bool   `mapstructure:"verbose"`

	Render RenderConfig `mapstructure:",squash"`
	Shader ShaderConfig `mapstructure:",squash"`
	Code   CodeConfig   `mapstructure:",squash"`
}

// RenderConfig configures the render command.
type RenderConfig struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Projection string  `mapstructure:"projection"`
	Scale      float64 `mapstructure:"scale"`
	Seamless   bool    `mapstructure:"seamless"`
	Compiled   bool    `mapstructure:"compiled"`
	Workers    int     `mapstructure:"workers"`
	Gradient   string  `mapstructure:"gradient"`
	Lighting   bool    `mapstructure:"lighting"`
	Wrap       bool    `mapstructure:"wrap"`
	Normal     bool    `mapstructure:"normal"`
	Bump       float64 `mapstructure:"bump"`
}

// ShaderConfig configures the shader command.
type ShaderConfig struct {
	Entry     string `mapstructure:"entry"`
	Compute   bool   `mapstructure:"compute"`
	Workgroup int    `mapstructure:"workgroup"`
	SPIRV     string `mapstructure:"spirv"`
	Listing   bool   `mapstructure:"listing"`
}

// CodeConfig configures the code command.
type CodeConfig struct {
	Package string `mapstructure:"package"`
	Func    string `mapstructure:"func"`
}

// SetDefaults installs the default of every key on v. Every key needs
// one, or viper would not consult the environment for it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("preset", "terrain")
	v.SetDefault("seed", 0)
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("verbose", false)
	v.SetDefault("width", 512)
	v.SetDefault("height", 256)
	v.SetDefault("projection", "plane")
	v.SetDefault("scale", 4.0)
	v.SetDefault("seamless", false)
	v.SetDefault("compiled", false)
	v.SetDefault("workers", 0)
	v.SetDefault("gradient", "terrain")
	v.SetDefault("lighting", false)
	v.SetDefault("wrap", false)
	v.SetDefault("normal", false)
	v.SetDefault("bump", 1.0)
	v.SetDefault("entry", "noise_value")
	v.SetDefault("compute", true)
	v.SetDefault("workgroup", 64)
	v.SetDefault("spirv", "")
	v.SetDefault("listing", false)
	v.SetDefault("package", "main")
	v.SetDefault("func", "BuildNoise")
}

// Load reads the configuration. Flags that were set win over the
// environment, which wins over the config file. file names the config
// file; when empty, noisegen.yaml is looked up in the working directory
// and its absence is not an error.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("noisegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	r := cfg.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", r.Width, r.Height)
	}
	if !slices.Contains(Projections, r.Projection) {
		return fmt.Errorf("projection must be one of %v, got %q", Projections, r.Projection)
	}
	if !slices.Contains(Gradients, r.Gradient) {
		return fmt.Errorf("gradient must be one of %v, got %q", Gradients, r.Gradient)
	}
	if r.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", r.Scale)
	}
	if cfg.Shader.Workgroup <= 0 {
		return fmt.Errorf("workgroup must be positive, got %d", cfg.Shader.Workgroup)
	}
	return nil
}
