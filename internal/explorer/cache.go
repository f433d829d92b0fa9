package explorer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Cache stores explorer responses on disk with a fixed time-to-live.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type cacheEntry struct {
	Expiry int64           `json:"expiry"`
	Data   json.RawMessage `json:"data"`
}

// NewCache returns a cache rooted at dir. The directory is created lazily.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl, now: time.Now}
}

// DefaultCacheDir returns <user cache dir>/ghost/etherscan, or "" when the
// platform has no cache directory.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "ghost", "etherscan")
}

func (c *Cache) path(chainID uint64, address string) string {
	return filepath.Join(c.dir, strings.ToLower(address)+"-"+strconv.FormatUint(chainID, 10)+".json")
}

// Get returns the cached payload for an address, if present and fresh.
func (c *Cache) Get(chainID uint64, address string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(chainID, address))
	if err != nil {
		return nil, false
	}
	var e cacheEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if c.now().Unix() >= e.Expiry {
		return nil, false
	}
	return e.Data, true
}

// Put stores a payload for an address.
func (c *Cache) Put(chainID uint64, address string, payload []byte) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(cacheEntry{
		Expiry: c.now().Add(c.ttl).Unix(),
		Data:   payload,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(chainID, address), data, 0o600)
}
