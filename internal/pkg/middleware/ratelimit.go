package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"gofit/internal/pkg/cache"
)

// RateLimiter limita requisições por IP usando um contador no Redis.
// O INCR atômico vem primeiro: cada requisição reserva a sua posição na
// janela antes da checagem, então requisições concorrentes do mesmo IP
// não ultrapassam o limite. A expiração é definida na primeira
// requisição da janela.
func RateLimiter(client cache.Client, limit int, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			key := "rate-limit:" + ip
			ctx := context.Background()

			count, err := client.Incr(ctx, key)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, duration); err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}

			if count > int64(limit) {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-int(count)))
			next.ServeHTTP(w, r)
		})
	}
}
