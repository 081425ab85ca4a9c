package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

const (
	activeCampaignsKey  = "adweave:campaigns:active"
	invalidationChannel = "adweave:cache:invalidate"
)

// redisCache implements Redis-based caching of the active-campaign set
type redisCache struct {
	client *redis.Client
	config Config
}

// newRedisCache creates a new Redis cache client
func newRedisCache(config Config) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCache{
		client: client,
		config: config,
	}, nil
}

// getActiveCampaigns retrieves the active set from Redis
func (rc *redisCache) getActiveCampaigns(ctx context.Context) ([]models.Campaign, error) {
	data, err := rc.client.Get(ctx, activeCampaignsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("Redis get error: %w", err)
	}

	var campaigns []models.Campaign
	if err := json.Unmarshal([]byte(data), &campaigns); err != nil {
		return nil, fmt.Errorf("JSON unmarshal error: %w", err)
	}

	return campaigns, nil
}

// setActiveCampaigns stores the active set in Redis
func (rc *redisCache) setActiveCampaigns(ctx context.Context, campaigns []models.Campaign, ttl time.Duration) error {
	data, err := json.Marshal(campaigns)
	if err != nil {
		return fmt.Errorf("JSON marshal error: %w", err)
	}

	if err := rc.client.Set(ctx, activeCampaignsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("Redis set error: %w", err)
	}

	return nil
}

// clear removes the cached set from Redis
func (rc *redisCache) clear(ctx context.Context) error {
	if err := rc.client.Del(ctx, activeCampaignsKey).Err(); err != nil {
		return fmt.Errorf("Redis delete error: %w", err)
	}
	return nil
}

// publishInvalidation broadcasts a cache invalidation event
func (rc *redisCache) publishInvalidation(ctx context.Context) error {
	return rc.client.Publish(ctx, invalidationChannel, activeCampaignsKey).Err()
}

// subscribeInvalidation listens for invalidation events until ctx is done
func (rc *redisCache) subscribeInvalidation(ctx context.Context, handler func(string)) error {
	pubsub := rc.client.Subscribe(ctx, invalidationChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			handler(msg.Payload)
		}
	}
}

// close closes the Redis connection
func (rc *redisCache) close() error {
	return rc.client.Close()
}
