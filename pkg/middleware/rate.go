package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hydroline/hydroline/pkg/response"
)

// RateLimit limits each client IP to limit requests per window using a
// sliding-window counter. Buckets for idle IPs are evicted in the background.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	type bucket struct {
		mu     sync.Mutex
		hits   []time.Time
		lastAt time.Time
	}

	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)

	go func() {
		for range time.Tick(window) {
			mu.Lock()
			for ip, b := range buckets {
				b.mu.Lock()
				idle := time.Since(b.lastAt) > 2*window
				b.mu.Unlock()
				if idle {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			mu.Lock()
			b, ok := buckets[ip]
			if !ok {
				b = &bucket{}
				buckets[ip] = b
			}
			mu.Unlock()

			b.mu.Lock()
			now := time.Now()
			b.lastAt = now

			cutoff := now.Add(-window)
			kept := b.hits[:0]
			for _, t := range b.hits {
				if t.After(cutoff) {
					kept = append(kept, t)
				}
			}
			b.hits = kept

			if len(b.hits) >= limit {
				b.mu.Unlock()
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			b.hits = append(b.hits, now)
			b.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
