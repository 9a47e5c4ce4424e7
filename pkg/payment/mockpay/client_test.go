package mockpay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, delay time.Duration, declined ...string) *Client {
	t.Helper()

	client, err := NewClient(Config{
		MerchantID:      "SHOPVERSE-TEST",
		ProcessingDelay: delay,
		DeclinedCards:   declined,
	})
	require.NoError(t, err)
	return client
}

func validCard() Card {
	return Card{
		Number:      "4242 4242 4242 4242",
		HolderName:  "Jane Shopper",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
		CVV:         "123",
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "Valid config",
			config:  Config{MerchantID: "MID", ProcessingDelay: time.Second},
			wantErr: false,
		},
		{
			name:    "Zero delay is allowed",
			config:  Config{MerchantID: "MID"},
			wantErr: false,
		},
		{
			name:    "Missing merchant ID",
			config:  Config{ProcessingDelay: time.Second},
			wantErr: true,
		},
		{
			name:    "Negative delay",
			config:  Config{MerchantID: "MID", ProcessingDelay: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestValidateCard(t *testing.T) {
	client := testClient(t, 0)
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Card)
		wantErr error
	}{
		{
			name:    "Valid card",
			mutate:  func(c *Card) {},
			wantErr: nil,
		},
		{
			name:    "Spaces in number are tolerated",
			mutate:  func(c *Card) { c.Number = "4242 4242 4242 4242" },
			wantErr: nil,
		},
		{
			name:    "Too few digits",
			mutate:  func(c *Card) { c.Number = "4242 4242 4242" },
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "Letters in number",
			mutate:  func(c *Card) { c.Number = "4242424242424abc" },
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "CVV too short",
			mutate:  func(c *Card) { c.CVV = "12" },
			wantErr: ErrInvalidCVV,
		},
		{
			name:    "CVV not numeric",
			mutate:  func(c *Card) { c.CVV = "12x" },
			wantErr: ErrInvalidCVV,
		},
		{
			name:    "Month out of range",
			mutate:  func(c *Card) { c.ExpiryMonth = 13 },
			wantErr: ErrInvalidExpiry,
		},
		{
			name:    "Expired last year",
			mutate:  func(c *Card) { c.ExpiryYear = now.Year() - 1 },
			wantErr: ErrInvalidExpiry,
		},
		{
			name: "Expired earlier this year",
			mutate: func(c *Card) {
				c.ExpiryYear = now.Year()
				c.ExpiryMonth = int(now.Month()) - 1
			},
			wantErr: ErrInvalidExpiry,
		},
		{
			name: "Expires this month is still valid",
			mutate: func(c *Card) {
				c.ExpiryYear = now.Year()
				c.ExpiryMonth = int(now.Month())
			},
			wantErr: nil,
		},
		{
			name:    "Blank holder name",
			mutate:  func(c *Card) { c.HolderName = "   " },
			wantErr: ErrMissingHolderName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)

			err := client.ValidateCard(card, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChargeApproved(t *testing.T) {
	client := testClient(t, 5*time.Millisecond)

	resp, err := client.Charge(context.Background(), ChargeRequest{
		OrderNumber: "ORD-20260601-0001",
		Amount:      149.99,
		Card:        validCard(),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Contains(t, resp.TID, "SHOPVERSE-TEST-")
	assert.Equal(t, "4242", resp.CardLast4)
	assert.Equal(t, 149.99, resp.Amount)
	assert.False(t, resp.ApprovedAt.IsZero())
}

func TestChargeInvalidRequest(t *testing.T) {
	client := testClient(t, 0)

	tests := []struct {
		name    string
		req     ChargeRequest
		wantErr error
	}{
		{
			name:    "Missing order number",
			req:     ChargeRequest{Amount: 100, Card: validCard()},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "Zero amount",
			req:     ChargeRequest{OrderNumber: "ORD-1", Amount: 0, Card: validCard()},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "Negative amount",
			req:     ChargeRequest{OrderNumber: "ORD-1", Amount: -10, Card: validCard()},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Charge(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
		})
	}
}

func TestChargeDeclinedCard(t *testing.T) {
	client := testClient(t, time.Millisecond, "4000000000000002")

	card := validCard()
	card.Number = "4000 0000 0000 0002"

	resp, err := client.Charge(context.Background(), ChargeRequest{
		OrderNumber: "ORD-20260601-0002",
		Amount:      50,
		Card:        card,
	})

	assert.ErrorIs(t, err, ErrCardDeclined)
	assert.Nil(t, resp)
}

func TestChargeAbortedByContext(t *testing.T) {
	client := testClient(t, 500*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	resp, err := client.Charge(ctx, ChargeRequest{
		OrderNumber: "ORD-20260601-0003",
		Amount:      75,
		Card:        validCard(),
	})

	assert.ErrorIs(t, err, ErrProcessingAborted)
	assert.Nil(t, resp)
}

func TestChargeCardValidatedBeforeProcessing(t *testing.T) {
	// A bad card must fail before the processing delay starts
	client := testClient(t, 2*time.Second)

	card := validCard()
	card.Number = "1234"

	start := time.Now()
	resp, err := client.Charge(context.Background(), ChargeRequest{
		OrderNumber: "ORD-20260601-0004",
		Amount:      25,
		Card:        card,
	})

	assert.ErrorIs(t, err, ErrInvalidCardNumber)
	assert.Nil(t, resp)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNormalizeCardNumber(t *testing.T) {
	assert.Equal(t, "4242424242424242", NormalizeCardNumber("4242 4242 4242 4242"))
	assert.Equal(t, "4242424242424242", NormalizeCardNumber("4242424242424242"))
	assert.Equal(t, "", NormalizeCardNumber("  "))
}
