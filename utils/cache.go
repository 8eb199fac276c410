// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fundihub/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for revoked-token bookkeeping.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// RevokeToken blacklists a token hash until its natural expiry.
func RevokeToken(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return GetAuthCacheClient().Set(ctx, "revoked:"+tokenHash, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token hash has been blacklisted.
func IsTokenRevoked(ctx context.Context, tokenHash string) bool {
	n, err := GetAuthCacheClient().Exists(ctx, "revoked:"+tokenHash).Result()
	return err == nil && n > 0
}
