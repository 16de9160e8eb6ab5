package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	pitchhttp "github.com/sagarc03/pitchgate/http"
	"github.com/sagarc03/pitchgate/keybackend"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "PITCHGATE"

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

// Config is the root configuration struct for pitchgate.
type Config struct {
	Env     string                `mapstructure:"env" yaml:"env" validate:"omitempty,oneof=dev development prod production"`
	Server  ServerConfig          `mapstructure:"server" yaml:"server"`
	Storage StorageConfig         `mapstructure:"storage" yaml:"storage"`
	Auth    keybackend.KeysConfig `mapstructure:"auth" yaml:"auth"`
	CORS    pitchhttp.CORSConfig  `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig             `mapstructure:"log" yaml:"log"`
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ServerConfig holds HTTP server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port            int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Realm           string `mapstructure:"realm" yaml:"realm" validate:"required"`
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=1"`
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=1"`
	IdleTimeout     int    `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1"`
}

// Addr returns the listen address for the configured port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Seconds converts a timeout setting into a time.Duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// StorageConfig holds the location of the served directory.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// ResolveRoot returns the absolute, symlink-free directory assets are
// served from. An empty path selects the directory holding the running
// executable.
func (c StorageConfig) ResolveRoot() (string, error) {
	dir := c.Path
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolve root: locate executable: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return "", fmt.Errorf("resolve root: %w", err)
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("resolve root: %s is not a directory", abs)
	}

	return abs, nil
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"root":      "storage.path",
	"port":      "server.port",
	"realm":     "server.realm",
	"keys-file": "auth.file",
	"log-level": "log.level",
}

// envAliases lists environment variables accepted for a key besides the
// prefixed form. The first one set wins.
var envAliases = map[string][]string{
	"server.port":           {"PORT"},
	"auth.primary.username": {"PITCH_USER"},
	"auth.primary.password": {"PITCH_PASS"},
	"auth.next.username":    {"PITCH_USER_NEXT"},
	"auth.next.password":    {"PITCH_PASS_NEXT"},
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

// bindEnv registers the prefixed variable and its aliases for every aliased key.
func bindEnv(v *viper.Viper) {
	for key, aliases := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(append([]string{key, prefixed}, aliases...)...)
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.realm", pitchhttp.DefaultRealm)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("storage.path", "") // executable directory

	v.SetDefault("auth.file", "")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
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
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator, then the cross-field auth rules
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.Auth.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
