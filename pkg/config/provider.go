package config

import (
	"sync"

	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Provider returns the configuration when a task executes.
type Provider func() (*schema.Configuration, error)

// NewProvider returns a Provider that loads the configuration on first use.
func NewProvider(info CliInfo) Provider {
	load := sync.OnceValues(func() (*schema.Configuration, error) {
		cfg, err := LoadConfig(info)
		if err != nil {
			return nil, err
		}
		return &cfg, nil
	})
	return Provider(load)
}

// Static wraps an already loaded configuration.
func Static(cfg *schema.Configuration) Provider {
	return func() (*schema.Configuration, error) {
		return cfg, nil
	}
}
