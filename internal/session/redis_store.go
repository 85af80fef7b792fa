package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and returns a session store. A zero ttl stores authenticated sessions without expiry.
func NewRedisStore(redisURL string, ttl time.Duration) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func (r *redisStore) Get(ctx context.Context, token string) (*Data, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to decode session")
	}
	return &data, nil
}

func (r *redisStore) Set(ctx context.Context, token string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}
	return errors.Wrap(r.client.Set(ctx, redisKeyPrefix+token, raw, expiryFor(r.ttl, data)).Err(), "failed to write session")
}

func (r *redisStore) Delete(ctx context.Context, token string) error {
	return errors.Wrap(r.client.Del(ctx, redisKeyPrefix+token).Err(), "failed to delete session")
}
