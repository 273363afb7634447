package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/assetvault/assetvault"
	assethttp "github.com/assetvault/assetvault/http"
)

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

// Config is the root configuration struct for assetvault.
type Config struct {
	Env       string                        `mapstructure:"env" validate:"required"`
	Server    ServerConfig                  `mapstructure:"server"`
	Assets    AssetsConfig                  `mapstructure:"assets"`
	Clients   []assetvault.ClientCredential `mapstructure:"clients" validate:"dive"`
	CORS      assethttp.CORSConfig          `mapstructure:"cors"`
	RateLimit assethttp.RateLimitConfig     `mapstructure:"rate_limit"`
	Log       LogConfig                     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// AssetsConfig holds asset storage configuration.
type AssetsConfig struct {
	Root string `mapstructure:"root" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":        "server.port",
	"assets-root": "assets.root",
	"env":         "env",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
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
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 4000)

	v.SetDefault("assets.root", "./assets")

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("rate_limit.requests", 120)
	v.SetDefault("rate_limit.window", 60)

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
	v.SetEnvPrefix("ASSETVAULT")
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

	// 6. Merge flat per-client environment variables
	if err := applyClientEnv(&cfg); err != nil {
		return nil, err
	}

	// 7. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyClientEnv merges clients declared through flat environment variables:
// ASSETVAULT_CLIENTS holds a comma-separated list of client short-names, and
// each name has ASSETVAULT_<NAME>_ID and ASSETVAULT_<NAME>_SECRET pairs keyed
// by the uppercased short-name. Env-declared clients override config-file
// clients with the same name. Viper cannot bind dynamic key sets, so these
// are read from the environment directly.
func applyClientEnv(cfg *Config) error {
	names := os.Getenv("ASSETVAULT_CLIENTS")
	if names == "" {
		return nil
	}

	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		envName := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		id := os.Getenv("ASSETVAULT_" + envName + "_ID")
		secret := os.Getenv("ASSETVAULT_" + envName + "_SECRET")

		if id == "" || secret == "" {
			return fmt.Errorf("client %q: %w: ASSETVAULT_%s_ID and ASSETVAULT_%s_SECRET must both be set",
				name, assetvault.ErrInvalidConfig, envName, envName)
		}

		cred := assetvault.ClientCredential{Name: name, ID: id, Secret: secret}

		replaced := false
		for i := range cfg.Clients {
			if cfg.Clients[i].Name == name {
				cfg.Clients[i] = cred
				replaced = true
				break
			}
		}
		if !replaced {
			cfg.Clients = append(cfg.Clients, cred)
		}
	}

	return nil
}
