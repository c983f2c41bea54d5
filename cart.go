package shopping

import (
	"context"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// CartStore keeps shopping carts in Redis, one JSON document per user
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

type CartStoreOption func(*CartStore)

// WithCartTTL sets a cart expiry; zero keeps carts until deleted
func WithCartTTL(ttl time.Duration) CartStoreOption {
	return func(s *CartStore) {
		s.ttl = ttl
	}
}

// WithCartLogger sets the store logger
func WithCartLogger(logger Logger) CartStoreOption {
	return func(s *CartStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCartStore creates a cart store over the given Redis client
func NewCartStore(client *redis.Client, opts ...CartStoreOption) *CartStore {
	s := &CartStore{
		client: client,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// Set replaces the cart stored for the cart's user
func (s *CartStore) Set(ctx context.Context, cart *ShoppingCart) error {
	if cart == nil || cart.UserID == "" {
		return goerrors.New("cart requires a user id", goerrors.CategoryBadInput)
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode cart")
	}

	if err := s.client.Set(ctx, cartKey(cart.UserID), data, s.ttl).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to store cart")
	}

	return nil
}

// Get returns the cart for a user, ErrCartNotFound when none exists
func (s *CartStore) Get(ctx context.Context, userID string) (*ShoppingCart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if goerrors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load cart")
	}

	cart := &ShoppingCart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode cart")
	}

	return cart, nil
}

// Delete removes the cart for a user and reports how many items it held.
// Deleting an absent cart is not an error; the count is zero.
func (s *CartStore) Delete(ctx context.Context, userID string) (int, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		if goerrors.Is(err, ErrCartNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to delete cart")
	}

	return len(cart.Items), nil
}
