package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FetchKey generates a cache key for a fetched URL
func FetchKey(url string) string {
	return key("fetch", url)
}

// EvidenceKey generates a cache key for an evidence lookup
func EvidenceKey(source, query string) string {
	return key("evidence:"+source, query)
}

func key(kind, value string) string {
	hash := sha256.Sum256([]byte(value))
	return "credlens:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
