package rdx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

// Client wraps the redis connection shared by token revocation and response caching.
type Client struct {
	Conn *redis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{Conn: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Conn.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Conn.Close()
}

// Revoke marks a token id as revoked until ttl elapses.
func (c *Client) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.Conn.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (c *Client) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.Conn.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetJSON decodes the value at key into dst. It reports false on a miss.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	v, err := c.Conn.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Conn.Set(ctx, key, b, ttl).Err()
}

// DelPrefix removes every key starting with prefix.
func (c *Client) DelPrefix(ctx context.Context, prefix string) error {
	iter := c.Conn.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Conn.Del(ctx, keys...).Err()
}
