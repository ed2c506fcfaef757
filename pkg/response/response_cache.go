package response

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
	"todolist/pkg/tracing"
)

// ResponseCache caches GET responses for a short TTL. Any collection
// mutation flushes the whole cache, so stale reads cannot outlive a write.
type ResponseCache struct {
	cache   *cache.Cache
	ttl     time.Duration
	logger  *config.AppLogger
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	Timestamp  time.Time
}

func NewResponseCache(ttl time.Duration, logger *config.AppLogger, metrics *telemetry.AppMetrics) *ResponseCache {
	return &ResponseCache{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cacheKey := rc.generateCacheKey(c, path)

		if cachedResp, found := rc.cache.Get(cacheKey); found {
			cached := cachedResp.(CachedResponse)

			if time.Since(cached.Timestamp) < rc.ttl {
				_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
				})
				defer span.End()

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(path)
				}

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()

				return
			}

			rc.cache.Delete(cacheKey)
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(path)
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			rc.cache.Set(cacheKey, CachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}, rc.ttl)
		}
	}
}

// InvalidateAll flushes every cached response. Called after each mutation.
func (rc *ResponseCache) InvalidateAll() {
	rc.cache.Flush()

	if rc.logger != nil {
		rc.logger.Zap().Debug("response cache flushed", zap.Int("entries", 0))
	}
}

func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyString := path

	if c.Request.URL.RawQuery != "" {
		keyString += "|" + c.Request.URL.RawQuery
	}

	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
