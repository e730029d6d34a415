package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// InvoicingConfig carries system-wide fallback values used when a
// merchant has no profile-level override.
type InvoicingConfig struct {
	DefaultHSNCode   string `mapstructure:"defaultHsnCode"`
	DefaultGSTRate   string `mapstructure:"defaultGstRate"`
	PriceIncludesTax bool   `mapstructure:"priceIncludesTax"`
}

func DefaultInvoicingConfig() InvoicingConfig {
	return InvoicingConfig{
		DefaultHSNCode:   "99999",
		DefaultGSTRate:   "18",
		PriceIncludesTax: true,
	}
}

// Rate parses the configured default GST rate.
func (c InvoicingConfig) Rate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.DefaultGSTRate))
	if err != nil {
		return decimal.NewFromInt(18)
	}
	return rate
}

// InvoicingConfigHolder serves the current invoicing defaults and hot
// reloads them when the config file changes.
type InvoicingConfigHolder struct {
	current atomic.Value // holds InvoicingConfig
}

func NewInvoicingConfigHolder() (*InvoicingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/gstbill")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultInvoicingConfig()
		v.SetDefault("invoicing.defaultHsnCode", defaults.DefaultHSNCode)
		v.SetDefault("invoicing.defaultGstRate", defaults.DefaultGSTRate)
		v.SetDefault("invoicing.priceIncludesTax", defaults.PriceIncludesTax)
	}

	var cfg InvoicingConfig
	if err := v.UnmarshalKey("invoicing", &cfg); err != nil {
		return nil, err
	}
	if err := validateInvoicingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoicingConfig
		if err := v.UnmarshalKey("invoicing", &updated); err != nil {
			log.Printf("[invoicing-config] reload failed: %v", err)
			return
		}
		if err := validateInvoicingConfig(updated); err != nil {
			log.Printf("[invoicing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoicing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticInvoicingConfigHolder wraps a fixed config, for tests.
func NewStaticInvoicingConfigHolder(cfg InvoicingConfig) *InvoicingConfigHolder {
	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *InvoicingConfigHolder) Get() InvoicingConfig {
	return h.current.Load().(InvoicingConfig)
}

func validateInvoicingConfig(cfg InvoicingConfig) error {
	if strings.TrimSpace(cfg.DefaultHSNCode) == "" {
		return errors.New("invoicing.defaultHsnCode cannot be empty")
	}
	if cfg.Rate().IsNegative() {
		return errors.New("invoicing.defaultGstRate cannot be negative")
	}
	return nil
}
