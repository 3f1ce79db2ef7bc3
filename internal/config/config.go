// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port           string
	PricingAPIURL  string
	PricingTimeout time.Duration
	Debounce       time.Duration
	CompanySlug    string
	SessionTTL     time.Duration
}

func Default() Config {
	return Config{
		Port:           "8080",
		PricingAPIURL:  "http://localhost:8000",
		PricingTimeout: 10 * time.Second,
		Debounce:       500 * time.Millisecond,
		SessionTTL:     2 * time.Hour,
	}
}

// FromEnv starts from Default and overrides every variable that is set.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup("PORT"); ok && v != "" {
		c.Port = v
	}
	if v, ok := lookup("PRICING_API_URL"); ok {
		c.PricingAPIURL = v
	}
	if v, ok := lookup("COMPANY_SLUG"); ok {
		c.CompanySlug = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"PRICING_API_TIMEOUT", &c.PricingTimeout},
		{"PREVIEW_DEBOUNCE", &c.Debounce},
		{"SESSION_TTL", &c.SessionTTL},
	}
	for _, d := range durations {
		v, ok := lookup(d.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.PricingTimeout <= 0 {
		return fmt.Errorf("pricing timeout must be positive, got %s", c.PricingTimeout)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("preview debounce must not be negative, got %s", c.Debounce)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL)
	}
	return nil
}
