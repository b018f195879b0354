package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Outbound messaging gateway settings.
	GatewayURL            string `mapstructure:"GATEWAY_URL"`
	GatewayPhonePrefix    string `mapstructure:"GATEWAY_PHONE_PREFIX"`
	GatewayPhoneDigits    int    `mapstructure:"GATEWAY_PHONE_DIGITS"`
	GatewayTimeoutSeconds int    `mapstructure:"GATEWAY_TIMEOUT_SECONDS"`

	AdminPasskey string `mapstructure:"ADMIN_PASSKEY"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("GATEWAY_PHONE_PREFIX", "994")
	v.SetDefault("GATEWAY_PHONE_DIGITS", 9)
	v.SetDefault("GATEWAY_TIMEOUT_SECONDS", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("GATEWAY_URL")
	v.BindEnv("GATEWAY_PHONE_PREFIX")
	v.BindEnv("GATEWAY_PHONE_DIGITS")
	v.BindEnv("GATEWAY_TIMEOUT_SECONDS")
	v.BindEnv("ADMIN_PASSKEY")
	v.BindEnv("JWT_SECRET")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// GatewayTimeout returns the messaging gateway deadline as a duration.
func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run. Outside development
// the admin passkey and JWT secret must be set so the admin surface is not
// left open.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.AdminPasskey == "" {
			return fmt.Errorf("ADMIN_PASSKEY is required when ENV is not development")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when ENV is not development")
		}
	}
	if c.GatewayURL != "" && !strings.HasPrefix(c.GatewayURL, "http") {
		return fmt.Errorf("GATEWAY_URL must be an http(s) URL, got %q", c.GatewayURL)
	}
	if c.GatewayPhoneDigits <= 0 {
		return fmt.Errorf("GATEWAY_PHONE_DIGITS must be positive, got %d", c.GatewayPhoneDigits)
	}
	if c.GatewayTimeoutSeconds <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT_SECONDS must be positive, got %d", c.GatewayTimeoutSeconds)
	}
	return nil
}
