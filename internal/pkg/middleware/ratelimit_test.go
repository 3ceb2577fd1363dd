package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gofit/internal/pkg/middleware"
)

// fakeCacheClient implementa cache.Client com um contador em memória,
// espelhando a semântica atômica do INCR do Redis.
type fakeCacheClient struct {
	mu       sync.Mutex
	counters map[string]int64
	expires  map[string]time.Duration
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{
		counters: make(map[string]int64),
		expires:  make(map[string]time.Duration),
	}
}

func (f *fakeCacheClient) Get(_ context.Context, _ string) (string, error) { return "", nil }

func (f *fakeCacheClient) GetInt(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeCacheClient) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (f *fakeCacheClient) Incr(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCacheClient) Expire(_ context.Context, key string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = expiration
	return nil
}

func (f *fakeCacheClient) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counters, key)
	return nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestRateLimiter_BloqueiaAcimaDoLimite garante que a requisição além do
// limite recebe 429 e que a expiração da janela é definida uma única vez,
// na primeira requisição.
func TestRateLimiter_BloqueiaAcimaDoLimite(t *testing.T) {
	client := newFakeCacheClient()
	handler := middleware.RateLimiter(client, 2, time.Minute)(okHandler())

	first := doRequest(t, handler)
	second := doRequest(t, handler)
	third := doRequest(t, handler)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, third.Code)

	assert.Equal(t, time.Minute, client.expires["rate-limit:10.0.0.1"])
	assert.Len(t, client.expires, 1)
}

// TestRateLimiter_ConcorrenciaNaoUltrapassaLimite garante que requisições
// simultâneas do mesmo IP nunca excedem o limite: o incremento atômico
// reserva a posição na janela antes da checagem.
func TestRateLimiter_ConcorrenciaNaoUltrapassaLimite(t *testing.T) {
	client := newFakeCacheClient()
	limit := 5
	handler := middleware.RateLimiter(client, limit, time.Minute)(okHandler())

	const total = 20
	codes := make([]int, total)
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = doRequest(t, handler).Code
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, code := range codes {
		if code == http.StatusOK {
			allowed++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, code)
		}
	}
	assert.Equal(t, limit, allowed)
}
