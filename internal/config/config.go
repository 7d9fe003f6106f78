package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Words    WordsConfig
	Auth     AuthConfig
	Daily    DailyConfig
	Log      LogConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string `mapstructure:"client_origin"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// WordsConfig selects the dictionary. An empty path uses the embedded list;
// a zero length takes it from the first word.
type WordsConfig struct {
	Path   string
	Length int
}

// AuthConfig holds token and cookie settings.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiresDays int    `mapstructure:"jwt_expires_days"`
	CookieName     string `mapstructure:"cookie_name"`
	SecureCookies  bool   `mapstructure:"secure_cookies"`
}

// DailyConfig holds daily puzzle settings.
type DailyConfig struct {
	Salt string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from file and env. Env var overrides use prefix SOLVER_,
// so database.path is SOLVER_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "5175")
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("database.path", "./data/solver.db")
	v.SetDefault("words.path", "")
	v.SetDefault("words.length", 0)
	v.SetDefault("auth.jwt_secret", "dev_secret_change_me")
	v.SetDefault("auth.jwt_expires_days", 14)
	v.SetDefault("auth.cookie_name", "solver_token")
	v.SetDefault("auth.secure_cookies", false)
	v.SetDefault("daily.salt", "local_dev_salt")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetConfigType("toml")
	if path := os.Getenv("SOLVER_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// config file is optional, but a broken one is an error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
