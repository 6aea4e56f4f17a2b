package config

import (
	"fmt"
	"time"
)

// TokenConfig holds the settings for issuing and verifying bearer tokens.
type TokenConfig struct {
	Secret string        `koanf:"secret"`
	Issuer string        `koanf:"issuer"`
	TTL    time.Duration `koanf:"ttl"`
}

func (c *TokenConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("token secret is not configured")
	}
	if c.Issuer == "" {
		return fmt.Errorf("token issuer is not configured")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("invalid token TTL: %v", c.TTL)
	}
	return nil
}
