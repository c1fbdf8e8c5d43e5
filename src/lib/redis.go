package lib

import (
	"context"
	"hms/src/lib/logger"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient parses REDIS_HOST as a redis URL, e.g.
// redis://localhost:6379/0. It returns nil when the URL is invalid.
func GetRedisClient(redisHost string) *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		logger.Log.Errorf("[redis] Error parsing connection string: %s", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

func PingRedis(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}

// NewRedisClient replaces the shared client. Passing nil resets it.
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
