package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// GetJSON loads a cached value into dest. Returns false on a miss or when
// the cache is not configured.
func GetJSON(key string, dest interface{}) bool {
	if Client == nil {
		return false
	}
	data, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value under key with a TTL. Failures are ignored; the
// cache is an optimization, not a source of truth.
func SetJSON(key string, value interface{}, ttl time.Duration) {
	if Client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	Client.Set(Ctx, key, data, ttl)
}

// Invalidate drops cached keys, e.g. after a write that changes a listing.
func Invalidate(keys ...string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, keys...)
}

// InvalidatePrefix drops every key under a prefix. Listings are cached once
// per filter combination, so a write has to clear all variants, not just the
// unfiltered one.
func InvalidatePrefix(prefix string) {
	if Client == nil {
		return
	}
	iter := Client.Scan(Ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(Ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		Client.Del(Ctx, keys...)
	}
}
