package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DashboardStatsKey returns the cache key for the global dashboard stats blob.
func (r *CacheKeyStruct) DashboardStatsKey() string {
	return "analytics:dashboard:stats"
}

// NotificationChannel returns the Redis PubSub channel for a user's
// live notification stream.
func (r *CacheKeyStruct) NotificationChannel(userID string) string {
	return fmt.Sprintf("notify:%s", userID)
}

var CacheKey = NewCacheKeyStruct()
