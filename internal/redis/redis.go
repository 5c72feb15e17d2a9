package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// Cache TTLs match the client polling cadence: data refreshes and the
// disqualification re-check run on a 60-second tick.
const (
	StatusTTL      = 60 * time.Second
	LeaderboardTTL = 60 * time.Second
)

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Enabled reports whether a redis client was configured; all cache helpers
// degrade to misses when it was not.
func Enabled() bool {
	return Rdb != nil
}

// DisqualificationKey caches a user's disqualification verdict.
func DisqualificationKey(userID int) string {
	return fmt.Sprintf("mizan:disqualified:%d", userID)
}

// LeaderboardKey caches the serialized admin leaderboard.
const LeaderboardKey = "mizan:leaderboard"

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Get returns the cached value and whether it was present.
func Get(ctx context.Context, key string) (string, bool) {
	if Rdb == nil {
		return "", false
	}
	val, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return "", false
	}
	return val, true
}

func Delete(ctx context.Context, keys ...string) {
	if Rdb == nil || len(keys) == 0 {
		return
	}
	if err := Rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("redis delete failed")
	}
}
