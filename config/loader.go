package config

// loader.go - configuration loading via viper.
//
// Precedence order (highest wins):
//   1. CLI flags        (bound by cmd/root.go)
//   2. Environment      (VLCRC_* variables)
//   3. Config file      (--config, or .vlcrc.yaml in $HOME / cwd)
//   4. Defaults         (defaults.go)

import (
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vlcrc/internal/errors"
)

// Load builds a Config from the given config file (optional, "" means
// search the default locations) and an optional already-parsed flag set
// whose flag names match the config keys.
func Load(file string, flags *flag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("password", def.Password)
	v.SetDefault("retries", def.Retries)
	v.SetDefault("timeout", int(def.CommandTimeout/time.Second))
	v.SetDefault("reconnect-delay", int(def.ReconnectDelay/time.Millisecond))

	v.SetEnvPrefix("VLCRC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".vlcrc")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is only an error when it was named explicitly.
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := Default()
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.Password = v.GetString("password")
	cfg.Retries = v.GetInt("retries")
	cfg.CommandTimeout = time.Duration(v.GetInt("timeout")) * time.Second
	cfg.ReconnectDelay = time.Duration(v.GetInt("reconnect-delay")) * time.Millisecond
	if flags != nil {
		cfg.Verbose = v.GetInt("verbose")
		cfg.Metrics = v.GetBool("metrics")
	}
	return cfg, nil
}
