package api

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/atlas/internal/logger"
	"golang.org/x/time/rate"
)

const RequestIDHeader = "X-Request-ID"

// RateLimitConfig tunes the per client limiter of mutating endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS" env-default:"10" validate:"gt=0"`
	Burst             int           `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20" validate:"gt=0"`
	CleanupPeriod     time.Duration `yaml:"cleanup_period" env:"RATE_LIMIT_CLEANUP" env-default:"1m"`
	ClientTTL         time.Duration `yaml:"client_ttl" env:"RATE_LIMIT_CLIENT_TTL" env-default:"3m"`
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages per-IP rate limiting with lifecycle control
type RateLimiter struct {
	clients       map[string]*client
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	clientTTL     time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter creates a RateLimiter with a background cleanup loop that
// stops when ctx is done or Shutdown is called.
func NewRateLimiter(ctx context.Context, cfg RateLimitConfig) *RateLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = time.Minute
	}
	if cfg.ClientTTL <= 0 {
		cfg.ClientTTL = 3 * time.Minute
	}
	rl := &RateLimiter{
		clients:       make(map[string]*client),
		limit:         rate.Limit(cfg.RequestsPerSecond),
		burst:         cfg.Burst,
		cleanupPeriod: cfg.CleanupPeriod,
		clientTTL:     cfg.ClientTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

// Middleware rejects requests over the limit. onLimited renders the
// rejection; nil means the JSON envelope.
func (rl *RateLimiter) Middleware(onLimited gin.HandlerFunc) gin.HandlerFunc {
	if onLimited == nil {
		onLimited = TooManyRequestsResponse
	}
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			onLimited(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	return rl.getVisitor(ip).Allow()
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.clients[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[ip] = &client{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.clients {
		if time.Since(v.lastSeen) > rl.clientTTL {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Shutdown stops the cleanup goroutine
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

// RequestLogger logs every request with timing, status and a request id.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}

		switch {
		case status >= 500:
			log.Warn("HTTP", fields)
		case status >= 400:
			log.Info("HTTP", fields)
		default:
			log.Debug("HTTP", fields)
		}
	}
}
