package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("confirmation code not found")

// ConfirmationRepository stores bcrypt hashes of outstanding confirmation
// codes, keyed by user ID. Codes expire with the key TTL and are dropped
// whenever the owning user record changes.
type ConfirmationRepository interface {
	Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Invalidate(ctx context.Context, userID string) error
}

type confirmationRepository struct {
	client *redis.Client
}

func NewConfirmationRepository(addr, password string) (ConfirmationRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &confirmationRepository{client: rdb}, nil
}

func confirmationKey(userID string) string {
	return fmt.Sprintf("confirmation:%s", userID)
}

func (r *confirmationRepository) Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, confirmationKey(userID), codeHash, ttl).Err()
}

func (r *confirmationRepository) Get(ctx context.Context, userID string) (string, error) {
	hash, err := r.client.Get(ctx, confirmationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *confirmationRepository) Invalidate(ctx context.Context, userID string) error {
	return r.client.Del(ctx, confirmationKey(userID)).Err()
}
