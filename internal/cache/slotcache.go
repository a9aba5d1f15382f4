package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"agencydesk/internal/modules/booking"

	"github.com/redis/go-redis/v9"
)

// SlotCache caches computed slot lists in redis. Each (host, date, duration)
// key is registered under a per-host tag set so a single mutation on the
// host's calendar can drop every dependent entry. Cache trouble is logged
// and treated as a miss; it never fails a request.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(addr string, ttl time.Duration) *SlotCache {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func (c *SlotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func slotKey(hostID int64, date string, durationMin int) string {
	return fmt.Sprintf("slots:%d:%s:%d", hostID, date, durationMin)
}

func hostTag(hostID int64) string {
	return fmt.Sprintf("slots:host:%d", hostID)
}

func (c *SlotCache) Get(ctx context.Context, hostID int64, date string, durationMin int) ([]booking.TimeSlot, bool) {
	raw, err := c.rdb.Get(ctx, slotKey(hostID, date, durationMin)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("slot cache get: %v", err)
		}
		return nil, false
	}

	var slots []booking.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, hostID int64, date string, durationMin int, slots []booking.TimeSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	key := slotKey(hostID, date, durationMin)
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, hostTag(hostID), key)
	pipe.Expire(ctx, hostTag(hostID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("slot cache set: %v", err)
	}
}

// InvalidateHost drops every cached slot list for the host. Called after a
// week save and after any booking mutation.
func (c *SlotCache) InvalidateHost(ctx context.Context, hostID int64) {
	tag := hostTag(hostID)
	keys, err := c.rdb.SMembers(ctx, tag).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("slot cache invalidate: %v", err)
		}
		return
	}

	keys = append(keys, tag)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("slot cache invalidate: %v", err)
	}
}
