package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/adapters/email"
	"github.com/supanat00/yaochaigym-data-record/internal/adapters/http/middleware"
	"github.com/supanat00/yaochaigym-data-record/internal/adapters/http/perf"
	accountStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/account"
	customerStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/customer"
	noticeStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/notice"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	CustomerStore customerStore.Store
	NoticeStore   noticeStore.Store
}

// loadCSRFKey reads the CSRF secret from YAOCHAI_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("YAOCHAI_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("YAOCHAI_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("YAOCHAI_ENV") == "production" {
		log.Fatal("YAOCHAI_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set YAOCHAI_CSRF_KEY for production.")
	return key
}

// loadCookieKeys derives the session cookie hash/block keys from
// YAOCHAI_COOKIE_KEY (hex-encoded, 64 bytes: 32 hash + 32 block). In
// development a random pair is generated per startup.
func loadCookieKeys() ([]byte, []byte) {
	if keyHex := os.Getenv("YAOCHAI_COOKIE_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 64 {
			log.Fatal("YAOCHAI_COOKIE_KEY must be 128 hex characters (64 bytes)")
		}
		return key[:32], key[32:]
	}
	if os.Getenv("YAOCHAI_ENV") == "production" {
		log.Fatal("YAOCHAI_COOKIE_KEY is required in production")
	}
	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	if _, err := rand.Read(hashKey); err != nil {
		log.Fatalf("failed to generate cookie hash key: %v", err)
	}
	if _, err := rand.Read(blockKey); err != nil {
		log.Fatalf("failed to generate cookie block key: %v", err)
	}
	return hashKey, blockKey
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var digestRecipients []string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string, recipients []string) {
	emailSender = sender
	emailFromAddress = from
	digestRecipients = recipients
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("YAOCHAI_ENV") == "production"

	hashKey, blockKey := loadCookieKeys()
	middleware.InitCookieCodec(hashKey, blockKey)

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
