package gateway

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"sync"
	"time"
)

// CacheEntry 缓存条目
type CacheEntry struct {
	Data        []byte
	ContentType string
	ExpiresAt   time.Time
	ETag        string
}

// MemoryCache 内存缓存
type MemoryCache struct {
	entries map[string]*CacheEntry
	mutex   sync.RWMutex

	MaxEntries int
	now        func() time.Time
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]*CacheEntry),
		MaxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get 获取未过期的条目
func (mc *MemoryCache) Get(key string) *CacheEntry {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()

	entry, ok := mc.entries[key]
	if !ok || mc.now().After(entry.ExpiresAt) {
		return nil
	}
	return entry
}

// Set 设置条目，满时先淘汰过期条目再淘汰最早过期的
func (mc *MemoryCache) Set(key string, entry *CacheEntry) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if len(mc.entries) >= mc.MaxEntries {
		now := mc.now()
		for k, e := range mc.entries {
			if now.After(e.ExpiresAt) {
				delete(mc.entries, k)
			}
		}
	}
	if len(mc.entries) >= mc.MaxEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range mc.entries {
			if oldestKey == "" || e.ExpiresAt.Before(oldest) {
				oldestKey, oldest = k, e.ExpiresAt
			}
		}
		delete(mc.entries, oldestKey)
	}
	mc.entries[key] = entry
}

// Len 条目数
func (mc *MemoryCache) Len() int {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return len(mc.entries)
}

// CacheMiddleware 缓存只读的GET响应
type CacheMiddleware struct {
	cache *MemoryCache
	// CacheTTL 路径前缀到缓存时间
	CacheTTL map[string]time.Duration
}

// NewCacheMiddleware 创建缓存中间件
func NewCacheMiddleware() *CacheMiddleware {
	return &CacheMiddleware{
		cache: NewMemoryCache(1000),
		CacheTTL: map[string]time.Duration{
			// 图鉴由种子生成，进程内不变
			"/catalog/":          10 * time.Minute,
			"/stats/leaderboard": 30 * time.Second,
		},
	}
}

// Middleware 缓存中间件
func (cm *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ttl, ok := cm.ttl(r.URL.Path)
		if r.Method != http.MethodGet || !ok {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		if entry := cm.cache.Get(key); entry != nil {
			if r.Header.Get("If-None-Match") == entry.ETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("Content-Type", entry.ContentType)
			w.Header().Set("ETag", entry.ETag)
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(entry.Data)
			return
		}

		recorder := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusOK && len(recorder.body) > 0 {
			cm.cache.Set(key, &CacheEntry{
				Data:        recorder.body,
				ContentType: w.Header().Get("Content-Type"),
				ExpiresAt:   cm.cache.now().Add(ttl),
				ETag:        etag(recorder.body),
			})
		}
	})
}

// ttl 路径对应的缓存时间，不缓存时返回false
func (cm *CacheMiddleware) ttl(path string) (time.Duration, bool) {
	for prefix, ttl := range cm.CacheTTL {
		if strings.HasPrefix(path, prefix) {
			return ttl, true
		}
	}
	return 0, false
}

func etag(data []byte) string {
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf(`"%x"`, h.Sum64())
}

// cacheRecorder 记录响应体
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

// WriteHeader 记录状态码
func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

// Write 记录并写出响应体
func (cr *cacheRecorder) Write(data []byte) (int, error) {
	cr.body = append(cr.body, data...)
	return cr.ResponseWriter.Write(data)
}
