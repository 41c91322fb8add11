package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter bounds the analytics endpoints with an atomic fixed-window
// counter in Redis. The Lua script checks and increments in one round trip;
// separate GET and INCR calls would race under concurrent requests.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	script *redis.Script
}

const fixedWindowLuaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")
if current + 1 > limit then
    return {0, current}
end

local new = redis.call("INCR", key)
if new == 1 then
    redis.call("EXPIRE", key, ttl)
end
return {1, new}
`

// NewRateLimiter creates a limiter allowing requestsPerMinute per client IP.
func NewRateLimiter(rdb *redis.Client, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		redis:  rdb,
		limit:  requestsPerMinute,
		window: time.Minute,
		script: redis.NewScript(fixedWindowLuaScript),
	}
}

// Allow checks and consumes one request slot for the given client key.
func (rl *RateLimiter) Allow(r *http.Request, client string) (bool, error) {
	key := fmt.Sprintf("ratelimit:analytics:%s:%d", client, time.Now().Unix()/int64(rl.window.Seconds()))
	res, err := rl.script.Run(r.Context(), rl.redis,
		[]string{key}, rl.limit, int(rl.window.Seconds())).Slice()
	if err != nil {
		return false, err
	}
	allowed, ok := res[0].(int64)
	return ok && allowed == 1, nil
}

// Middleware enforces the limit per client IP. Redis outages fail open: a
// throttling layer must never take the dashboard down with it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := r.RemoteAddr
		if host, _, err := net.SplitHostPort(client); err == nil {
			client = host
		}
		allowed, err := rl.Allow(r, client)
		if err != nil {
			log.Printf("[api] rate limiter unavailable, failing open: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
