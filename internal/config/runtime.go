package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RuntimeConfig holds operator-tunable defaults that can change without a
// restart, notably the threshold used when a low-stock query names none.
type RuntimeConfig struct {
	LowStockThreshold int `mapstructure:"lowStockThreshold"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		LowStockThreshold: 10,
	}
}

type RuntimeConfigHolder struct {
	current atomic.Value // holds RuntimeConfig
}

func NewRuntimeConfigHolder() (*RuntimeConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("itemd")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/itemd")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ITEMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRuntimeConfig()
	v.SetDefault("defaults.lowStockThreshold", defaults.LowStockThreshold)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg RuntimeConfig
	if err := v.UnmarshalKey("defaults", &cfg); err != nil {
		return nil, err
	}
	if err := validateRuntimeConfig(cfg); err != nil {
		return nil, err
	}

	holder := &RuntimeConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RuntimeConfig
		if err := v.UnmarshalKey("defaults", &updated); err != nil {
			log.Printf("[runtime-config] reload failed: %v", err)
			return
		}
		if err := validateRuntimeConfig(updated); err != nil {
			log.Printf("[runtime-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[runtime-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticRuntimeConfigHolder wraps a fixed config with no file watching.
func StaticRuntimeConfigHolder(cfg RuntimeConfig) *RuntimeConfigHolder {
	h := &RuntimeConfigHolder{}
	h.current.Store(cfg)
	return h
}

func (h *RuntimeConfigHolder) Get() RuntimeConfig {
	return h.current.Load().(RuntimeConfig)
}

func validateRuntimeConfig(cfg RuntimeConfig) error {
	if cfg.LowStockThreshold < 0 {
		return errors.New("defaults.lowStockThreshold cannot be negative")
	}
	return nil
}
