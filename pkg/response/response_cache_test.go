package response

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"todolist/internal/core/telemetry"
)

func newTestCache(ttl time.Duration) *ResponseCache {
	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())

	return NewResponseCache(ttl, nil, metrics)
}

func newCachedRouter(cache *ResponseCache, callCount *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(cache.CacheMiddleware())

	router.GET("/todos", func(c *gin.Context) {
		*callCount++
		c.JSON(200, gin.H{"message": "test", "count": *callCount})
	})

	router.POST("/todos", func(c *gin.Context) {
		cache.InvalidateAll()
		c.JSON(201, gin.H{"message": "created"})
	})

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestResponseCacheMiddleware_CacheMiss(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	router := newCachedRouter(newTestCache(time.Minute), &callCount)

	w := get(router, "/todos")

	Expect(w.Code).To(Equal(200))
	Expect(callCount).To(Equal(1))
	Expect(w.Header().Get("X-Cache")).To(Equal("MISS"))
}

func TestResponseCacheMiddleware_CacheHit(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	router := newCachedRouter(newTestCache(time.Minute), &callCount)

	w1 := get(router, "/todos")

	Expect(w1.Header().Get("X-Cache")).To(Equal("MISS"))

	w2 := get(router, "/todos")

	Expect(w2.Code).To(Equal(200))
	Expect(callCount).To(Equal(1))
	Expect(w2.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(w2.Body.String()).To(Equal(w1.Body.String()))
}

func TestResponseCacheMiddleware_QueryStringVariesKey(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	router := newCachedRouter(newTestCache(time.Minute), &callCount)

	get(router, "/todos")
	w := get(router, "/todos?sort_by=text")

	Expect(callCount).To(Equal(2))
	Expect(w.Header().Get("X-Cache")).To(Equal("MISS"))
}

func TestResponseCacheMiddleware_OnlyCachesGET(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	router := newCachedRouter(newTestCache(time.Minute), &callCount)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/todos", nil)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(201))
	Expect(w.Header().Get("X-Cache")).To(BeEmpty())
}

func TestResponseCache_InvalidateAllFlushes(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	cache := newTestCache(time.Minute)
	router := newCachedRouter(cache, &callCount)

	get(router, "/todos")

	// Mutation flushes the cache, the next read goes to the handler.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/todos", nil)
	router.ServeHTTP(w, req)

	w2 := get(router, "/todos")

	Expect(w2.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(callCount).To(Equal(2))
}

func TestResponseCache_ExpiredEntryIsMiss(t *testing.T) {
	RegisterTestingT(t)

	callCount := 0
	router := newCachedRouter(newTestCache(10*time.Millisecond), &callCount)

	get(router, "/todos")

	time.Sleep(20 * time.Millisecond)

	w := get(router, "/todos")

	Expect(w.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(callCount).To(Equal(2))
}
