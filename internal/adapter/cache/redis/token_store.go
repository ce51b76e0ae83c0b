package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"loginapp/internal/core/domain"
)

const tokenKeyPrefix = "auth:access_token:"

var ErrTokenNotFound = errors.New("access token not found")

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// TokenStore persists access tokens as redis keys that expire together
// with the token.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func key(userID domain.UserID) string {
	return tokenKeyPrefix + strconv.Itoa(int(userID))
}

func (s *TokenStore) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	if err := s.client.Set(ctx, key(userID), token.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("error storing access token: %w", err)
	}

	return nil
}

func (s *TokenStore) Get(ctx context.Context, userID domain.UserID) (domain.AccessToken, error) {
	value, err := s.client.Get(ctx, key(userID)).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}

	if err != nil {
		return "", fmt.Errorf("error reading access token: %w", err)
	}

	return domain.AccessToken(value), nil
}
