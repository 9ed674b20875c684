package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

// ActiveAlertCache holds the responder dashboard's working set (pending and
// responding alerts). Lifecycle mutations invalidate it; readers fall back
// to the store on a miss.
type ActiveAlertCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewActiveAlertCache(r *Redis) *ActiveAlertCache {
	return &ActiveAlertCache{
		client: r.Client,
		key:    "alerts:active",
		ttl:    30 * time.Second,
	}
}

// GetActive returns (nil, nil) on a cache miss.
func (c *ActiveAlertCache) GetActive(ctx context.Context) ([]*domain.Alert, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var alerts []*domain.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *ActiveAlertCache) SetActive(ctx context.Context, alerts []*domain.Alert) error {
	b, err := json.Marshal(alerts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

func (c *ActiveAlertCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
