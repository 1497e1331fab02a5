package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

const defaultSnapshotTTL = 5 * time.Minute

// SnapshotCache keeps the most recent tracking snapshot per shipment so that
// a view can still be served when the authoritative store is unreachable.
// Key format: snapshot:<shipment_id>
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a SnapshotCache wrapping the given Redis client.
// A non-positive ttl falls back to the default.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Put stores the snapshot, replacing any previous entry for the shipment.
func (c *SnapshotCache) Put(ctx context.Context, snap *domain.TrackingSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(snap.ShipmentID), raw, c.ttl).Err()
}

// Get returns the cached snapshot, or (nil, nil) on a cache miss.
func (c *SnapshotCache) Get(ctx context.Context, shipmentID string) (*domain.TrackingSnapshot, error) {
	raw, err := c.client.Get(ctx, c.key(shipmentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot cache get: %w", err)
	}

	var snap domain.TrackingSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("snapshot cache unmarshal: %w", err)
	}
	return &snap, nil
}

func (c *SnapshotCache) key(shipmentID string) string {
	return "snapshot:" + shipmentID
}
