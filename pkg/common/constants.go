package common

const (
	// RedisKeyNewsCache prefixes every cached source fetch stored in Redis.
	RedisKeyNewsCache = "news.source.cache"

	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"

	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)
