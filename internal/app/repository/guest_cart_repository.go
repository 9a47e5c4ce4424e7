package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

const (
	guestCartKeyPrefix = "guest_cart:"
	guestCartTTL       = 7 * 24 * time.Hour
)

// ErrGuestCartNotFound is returned when no cart exists for the session.
var ErrGuestCartNotFound = errors.New("guest cart not found")

type GuestCartStore interface {
	Get(ctx context.Context, sessionID string) (*model.GuestCart, error)
	Save(ctx context.Context, cart *model.GuestCart) error
	Delete(ctx context.Context, sessionID string) error
}

type guestCartStore struct {
	client *redis.Client
}

func NewGuestCartStore(client *redis.Client) GuestCartStore {
	return &guestCartStore{client: client}
}

func guestCartKey(sessionID string) string {
	return fmt.Sprintf("%s%s", guestCartKeyPrefix, sessionID)
}

func (s *guestCartStore) Get(ctx context.Context, sessionID string) (*model.GuestCart, error) {
	data, err := s.client.Get(ctx, guestCartKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrGuestCartNotFound
	}
	if err != nil {
		logger.Error("Failed to get guest cart from redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	var cart model.GuestCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		logger.Error("Failed to unmarshal guest cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return &cart, nil
}

func (s *guestCartStore) Save(ctx context.Context, cart *model.GuestCart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		logger.Error("Failed to marshal guest cart", err, map[string]interface{}{
			"session_id": cart.SessionID,
		})
		return err
	}

	if err := s.client.Set(ctx, guestCartKey(cart.SessionID), data, guestCartTTL).Err(); err != nil {
		logger.Error("Failed to save guest cart to redis", err, map[string]interface{}{
			"session_id": cart.SessionID,
		})
		return err
	}

	logger.Debug("Guest cart saved to redis", map[string]interface{}{
		"session_id": cart.SessionID,
		"items":      len(cart.Items),
	})
	return nil
}

func (s *guestCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, guestCartKey(sessionID)).Err(); err != nil {
		logger.Error("Failed to delete guest cart from redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
