// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"strings"
	"time"

	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/yeelight"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "YEELIGHT"

type Config struct {
	// Host is the bulb's address
	Host string
	// Port is the bulb's control port
	Port uint16
	// ConnectionMode is session or per-command
	ConnectionMode yeelight.ConnectionMode
	// ConnectTimeout bounds dialling the bulb
	ConnectTimeout time.Duration
	// ReadTimeout bounds each command's exchange
	ReadTimeout time.Duration
	// Debug enables debug logging and raw payload output
	Debug bool
	// StateDir is where the last applied scene is recorded; empty disables it
	StateDir string
}

// Load reads .env (or the given files) and then YEELIGHT_* variables.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", "10.0.0.93")
	v.SetDefault("port", yeelight.DefaultPort)
	v.SetDefault("connection_mode", string(yeelight.ModeSession))
	v.SetDefault("connect_timeout", yeelight.DefaultConnectTimeout)
	v.SetDefault("read_timeout", yeelight.DefaultReadTimeout)
	v.SetDefault("debug", false)
	v.SetDefault("state_dir", "")

	mode, err := yeelight.ParseConnectionMode(v.GetString("connection_mode"))
	if err != nil {
		return Config{}, err
	}

	port := v.GetInt("port")
	if port < 1 || port > 65535 {
		return Config{}, errors.Errorf("port %d out of range", port)
	}

	cfg := Config{
		Host:           strings.TrimSpace(v.GetString("host")),
		Port:           uint16(port),
		ConnectionMode: mode,
		ConnectTimeout: v.GetDuration("connect_timeout"),
		ReadTimeout:    v.GetDuration("read_timeout"),
		Debug:          v.GetBool("debug"),
		StateDir:       v.GetString("state_dir"),
	}

	if cfg.Host == "" {
		return Config{}, errors.Errorf("host must not be empty")
	}
	if cfg.ConnectTimeout <= 0 {
		return Config{}, errors.Errorf("connect timeout must be positive, got %s", cfg.ConnectTimeout)
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, errors.Errorf("read timeout must be positive, got %s", cfg.ReadTimeout)
	}

	return cfg, nil
}

// ClientOptions turns the bulb related settings into client options.
func (c Config) ClientOptions() []yeelight.Option {
	return []yeelight.Option{
		yeelight.WithMode(c.ConnectionMode),
		yeelight.WithConnectTimeout(c.ConnectTimeout),
		yeelight.WithReadTimeout(c.ReadTimeout),
		yeelight.WithDebug(c.Debug),
	}
}
