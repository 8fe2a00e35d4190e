// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"medibook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// OTPCacheClient is the dedicated client for OTP storage.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// pingOrDie verifies connectivity at startup; callers outside startup use the
// lazy getters, which do not ping.
func pingOrDie(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitAuthCache()
	InitOTPCache()
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	pingOrDie(CacheClient, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	pingOrDie(AuthCacheClient, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// InitOTPCache initializes the Redis client for OTP storage.
func InitOTPCache() {
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	pingOrDie(OTPCacheClient, "OTP Cache")
}

// GetOTPCacheClient returns the Redis client for OTP storage.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	}
	return OTPCacheClient
}
