package mockpay

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopverse/shopverse-backend/pkg/util"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Client simulates a card payment gateway. Charges are validated and then
// "processed" for a configurable delay before resolving; the delay is tied to
// the caller's context so an abandoned checkout never produces a late approval.
type Client struct {
	config Config
}

// NewClient creates a new gateway client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Client{config: config}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// ValidateCard checks the collected card fields without charging anything.
// Number must be 16 digits after stripping spaces, CVV 3 digits, expiry a
// real month that has not passed, and the holder name non-empty.
func (c *Client) ValidateCard(card Card, now time.Time) error {
	number := NormalizeCardNumber(card.Number)
	if len(number) != 16 || !digitsOnly.MatchString(number) {
		return ErrInvalidCardNumber
	}
	if len(card.CVV) != 3 || !digitsOnly.MatchString(card.CVV) {
		return ErrInvalidCVV
	}
	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		return ErrInvalidExpiry
	}
	if card.ExpiryYear < now.Year() ||
		(card.ExpiryYear == now.Year() && time.Month(card.ExpiryMonth) < now.Month()) {
		return ErrInvalidExpiry
	}
	if strings.TrimSpace(card.HolderName) == "" {
		return ErrMissingHolderName
	}
	return nil
}

// Charge validates and processes a charge. Declined cards fail after the
// processing delay, like a real gateway would. Cancelling ctx aborts the
// charge with ErrProcessingAborted.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	if req.OrderNumber == "" {
		return nil, ErrInvalidRequest
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := c.ValidateCard(req.Card, time.Now()); err != nil {
		return nil, err
	}

	if err := c.process(ctx); err != nil {
		return nil, err
	}

	number := NormalizeCardNumber(req.Card.Number)
	for _, declined := range c.config.DeclinedCards {
		if number == NormalizeCardNumber(declined) {
			return nil, ErrCardDeclined
		}
	}

	return &ChargeResponse{
		TID:        util.GenerateTransactionID(c.config.MerchantID),
		CardLast4:  number[len(number)-4:],
		Amount:     req.Amount,
		ApprovedAt: time.Now(),
	}, nil
}

// process waits out the configured delay or aborts when ctx is done
func (c *Client) process(ctx context.Context) error {
	if c.config.ProcessingDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(c.config.ProcessingDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ErrProcessingAborted
	case <-timer.C:
		return nil
	}
}

// NormalizeCardNumber strips spaces from a card number
func NormalizeCardNumber(number string) string {
	return strings.ReplaceAll(number, " ", "")
}
