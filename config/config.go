package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/servit"
	servithttp "github.com/sagarc03/servit/http"
)

// DefaultConfigName is the base name looked up in the working directory when
// no config file is given. Any extension viper supports is accepted.
const DefaultConfigName = "servit"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for servit.
type Config struct {
	Server   ServerConfig                `mapstructure:"server" yaml:"server"`
	Delivery servit.Options              `mapstructure:"delivery" yaml:"delivery"`
	Profiles map[string]servit.Overrides `mapstructure:"profiles" yaml:"profiles,omitempty" validate:"dive"`
	CORS     servithttp.CORSConfig       `mapstructure:"cors" yaml:"cors"`
	Log      LogConfig                   `mapstructure:"log" yaml:"log"`
	Env      string                      `mapstructure:"env" yaml:"env" validate:"required,oneof=dev prod"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	H2C          bool   `mapstructure:"h2c" yaml:"h2c"`
	ProfileParam string `mapstructure:"profile_param" yaml:"profile_param"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// ProfileOptions returns the options for each named profile, built by
// merging the profile's overrides onto the delivery options.
func (c *Config) ProfileOptions() map[string]servit.Options {
	out := make(map[string]servit.Options, len(c.Profiles))
	for name, ov := range c.Profiles {
		out[name] = c.Delivery.Merge(ov)
	}
	return out
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":          "server.port",
	"h2c":           "server.h2c",
	"profile-param": "server.profile_param",
	"dir":           "delivery.dir",
	"max-age":       "delivery.max_age",
	"index-file":    "delivery.index_file",
	"compress":      "delivery.compress",
	"log-level":     "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.h2c", false)
	v.SetDefault("server.profile_param", "conf")

	defaults := servit.DefaultOptions()
	v.SetDefault("delivery.dir", defaults.RootDir)
	v.SetDefault("delivery.max_age", defaults.MaxAge)
	v.SetDefault("delivery.index_file", defaults.IndexFile)
	v.SetDefault("delivery.compress", defaults.Compress)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Range", "If-Modified-Since", "Accept-Encoding"})
	v.SetDefault("cors.exposed_headers", []string{"Content-Range", "Content-Length", "Content-Encoding", "Last-Modified"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("env", "dev")
}

// newValidator returns a validator that knows the servit specific rules.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("indexfile", func(fl validator.FieldLevel) bool {
		return servit.IsValidIndexFile(fl.Field().String())
	})
	return validate
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("SERVIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
