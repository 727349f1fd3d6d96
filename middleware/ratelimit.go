package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit 写操作限流中间件
// 每 IP 在 window 内最多 maxRequests 次写请求（POST/PUT/PATCH/DELETE），超过则返回 429。
// maxRequests <= 0 时不限流。
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu        sync.Mutex
		store     = make(map[string][]time.Time)
		lastSweep = time.Now()
	)

	prune := func(ts []time.Time, cutoff time.Time) []time.Time {
		kept := ts[:0]
		for _, t := range ts {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		return kept
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		// 每个窗口清理一次不再活跃的 IP
		if now.Sub(lastSweep) >= window {
			for k, ts := range store {
				if ts = prune(ts, cutoff); len(ts) == 0 {
					delete(store, k)
				} else {
					store[k] = ts
				}
			}
			lastSweep = now
		}

		ts := prune(store[ip], cutoff)
		if len(ts) >= maxRequests {
			retry := ts[0].Add(window).Sub(now)
			store[ip] = ts
			mu.Unlock()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "Too many requests, please try again later"},
			})
			return
		}
		store[ip] = append(ts, now)
		mu.Unlock()
		c.Next()
	}
}
