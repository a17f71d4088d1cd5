package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyHTTPAddr      = "http_addr"
	KeyPort          = "port"
	KeyAllowedOrigin = "allowed_origin"
	KeyStartingChips = "starting_chips"
	KeyBotDelay      = "bot_delay"
	KeyBotRaiseStep  = "bot_raise_step"
	KeyLogLevel      = "log_level"
	KeyLogPretty     = "log_pretty"
)

// Table holds the per-room game settings.
type Table struct {
	StartingChips int           `json:"startingChips"`
	BotDelay      time.Duration `json:"botDelay"`
	BotRaiseStep  int           `json:"botRaiseStep"`
}

type Config struct {
	HTTPAddr      string
	AllowedOrigin string
	LogLevel      string
	LogPretty     bool
	Table         Table
}

func Defaults() Config {
	return Config{
		HTTPAddr:      ":4000",
		AllowedOrigin: "*",
		LogLevel:      "info",
		Table: Table{
			StartingChips: 1000,
			BotDelay:      1500 * time.Millisecond,
			BotRaiseStep:  50,
		},
	}
}

// NewViper returns a viper instance seeded with defaults and bound to the
// environment (HTTP_ADDR, PORT, STARTING_CHIPS, BOT_DELAY, ...).
func NewViper() *viper.Viper {
	d := Defaults()
	v := viper.New()
	v.SetDefault(KeyHTTPAddr, "")
	v.SetDefault(KeyPort, "")
	v.SetDefault(KeyAllowedOrigin, d.AllowedOrigin)
	v.SetDefault(KeyStartingChips, d.Table.StartingChips)
	v.SetDefault(KeyBotDelay, d.Table.BotDelay)
	v.SetDefault(KeyBotRaiseStep, d.Table.BotRaiseStep)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogPretty, false)
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPAddr:      v.GetString(KeyHTTPAddr),
		AllowedOrigin: v.GetString(KeyAllowedOrigin),
		LogLevel:      v.GetString(KeyLogLevel),
		LogPretty:     v.GetBool(KeyLogPretty),
		Table: Table{
			StartingChips: v.GetInt(KeyStartingChips),
			BotDelay:      v.GetDuration(KeyBotDelay),
			BotRaiseStep:  v.GetInt(KeyBotRaiseStep),
		},
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = Defaults().HTTPAddr
		if port := v.GetString(KeyPort); port != "" {
			cfg.HTTPAddr = ":" + port
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Table.StartingChips <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyStartingChips, c.Table.StartingChips)
	case c.Table.BotRaiseStep <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyBotRaiseStep, c.Table.BotRaiseStep)
	case c.Table.BotDelay < 0:
		return fmt.Errorf("%s must not be negative, got %s", KeyBotDelay, c.Table.BotDelay)
	}
	return nil
}
