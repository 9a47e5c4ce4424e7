package mockpay

import "time"

// Config represents the configuration for the simulated gateway client
type Config struct {
	// MerchantID is the merchant code stamped onto transaction IDs
	MerchantID string

	// ProcessingDelay is how long a charge "processes" before resolving
	ProcessingDelay time.Duration

	// DeclinedCards lists card numbers (digits only) that always decline,
	// mirroring the test-card conventions of real gateways
	DeclinedCards []string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return ErrInvalidRequest
	}
	if c.ProcessingDelay < 0 {
		return ErrInvalidRequest
	}
	return nil
}
