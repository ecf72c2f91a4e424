// Package cache stores fetched authority records and knowledge-base
// lookup responses so repeated conversions of the same record do not hit
// the network twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from namespaced parts, e.g.
// Key("record", "VIAF", "113230702") or Key("lookup", "P227", "118540238").
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "authlink:v1:" + hex.EncodeToString(h.Sum(nil))
}
