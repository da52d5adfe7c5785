package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/goalledger-backend/pkg/clientip"
)

const (
	// RateLimitWindow is 120 seconds
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed per IP in the window
	RateLimitMaxRequests = 300
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RedisRateLimit counts requests per IP in a fixed Redis window shared by every
// instance. When Redis fails the request is allowed.
func RedisRateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := RateLimitKeyPrefix + clientip.LimitKey(r)

			pipe := client.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, RateLimitWindow)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("rate limit check failed, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			count := int(incr.Val())
			if count > RateLimitMaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
				tooManyRequests(w, RateLimitMaxRequests, fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", int(RateLimitWindow.Seconds())))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(RateLimitMaxRequests-count))
			next.ServeHTTP(w, r)
		})
	}
}
