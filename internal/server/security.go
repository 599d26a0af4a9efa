package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/FissureBot_Go/internal/logger"
)

// AuthMiddleware validates the API key on every non-public path.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					LogFieldRemoteAddr, r.RemoteAddr,
					LogFieldPath, r.URL.Path,
					LogFieldHasKey, providedKey != "",
					LogFieldIP, ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorConfig tunes per-IP abuse detection.
type DetectorConfig struct {
	RequestsPerSecond   float64
	Burst               int
	FailedAuthThreshold int
	Window              time.Duration
	MaxTrackedIPs       int
}

// DefaultDetectorConfig returns the production limits.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		RequestsPerSecond:   DefaultRequestsPerSecond,
		Burst:               DefaultRequestBurst,
		FailedAuthThreshold: DefaultFailedAuthThreshold,
		Window:              DefaultDetectorWindow,
		MaxTrackedIPs:       DefaultMaxTrackedIPs,
	}
}

// SuspiciousActivityDetector rate limits requests per IP with a token bucket
// and alerts on repeated failed authentication. Idle IPs age out.
type SuspiciousActivityDetector struct {
	cfg        DetectorConfig
	mu         sync.Mutex
	limiters   *expirable.LRU[string, *rate.Limiter]
	failedAuth *expirable.LRU[string, int]
	blocked    *expirable.LRU[string, int]
}

// NewSuspiciousActivityDetector creates a detector.
func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	def := DefaultDetectorConfig()
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.FailedAuthThreshold <= 0 {
		cfg.FailedAuthThreshold = def.FailedAuthThreshold
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.MaxTrackedIPs <= 0 {
		cfg.MaxTrackedIPs = def.MaxTrackedIPs
	}
	return &SuspiciousActivityDetector{
		cfg:        cfg,
		limiters:   expirable.NewLRU[string, *rate.Limiter](cfg.MaxTrackedIPs, nil, cfg.Window),
		failedAuth: expirable.NewLRU[string, int](cfg.MaxTrackedIPs, nil, cfg.Window),
		blocked:    expirable.NewLRU[string, int](cfg.MaxTrackedIPs, nil, cfg.Window),
	}
}

// RecordFailedAuth counts a failed authentication attempt and returns the
// count within the window.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	n, _ := s.failedAuth.Get(ip)
	n++
	s.failedAuth.Add(ip, n)
	s.mu.Unlock()

	if n >= s.cfg.FailedAuthThreshold {
		slog.Warn(SecurityAlertFailedAuth, LogFieldIP, ip, LogFieldCount, n)
	}
	return n
}

// Allow takes a token from the IP's bucket. It returns false once the
// bucket is empty.
func (s *SuspiciousActivityDetector) Allow(ip string) bool {
	s.mu.Lock()
	lim, ok := s.limiters.Get(ip)
	if !ok {
		lim = rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst)
	}
	// Re-adding refreshes the idle expiry.
	s.limiters.Add(ip, lim)
	s.mu.Unlock()

	if lim.Allow() {
		return true
	}

	s.mu.Lock()
	n, _ := s.blocked.Get(ip)
	n++
	s.blocked.Add(ip, n)
	s.mu.Unlock()
	if n%BlockedLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, LogFieldIP, ip, LogFieldCount, n)
	}
	return false
}

// RateLimitMiddleware rejects requests from IPs that exhausted their bucket.
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// X-Forwarded-For is only trusted when the direct peer is a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop our proxy saw.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
		break
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
