package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "github.com/supanat00/yaochaigym-data-record/internal/adapters/email"
	web "github.com/supanat00/yaochaigym-data-record/internal/adapters/http"
	"github.com/supanat00/yaochaigym-data-record/internal/adapters/http/perf"
	"github.com/supanat00/yaochaigym-data-record/internal/adapters/storage"
	accountStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/account"
	customerStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/customer"
	noticeStore "github.com/supanat00/yaochaigym-data-record/internal/adapters/storage/notice"
	"github.com/supanat00/yaochaigym-data-record/internal/application/orchestrators"
	"github.com/supanat00/yaochaigym-data-record/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		CustomerStore: customerStore.NewSQLiteStore(timedDB),
		NoticeStore:   noticeStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom), cfg.EmailFrom, cfg.DigestRecipients)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.EmailFrom, cfg.DigestRecipients)
		if cfg.IsProduction() {
			log.Println("WARNING: YAOCHAI_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set YAOCHAI_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(cfg.StaticDir, stores, collector)

	log.Printf("Yaochai Gym %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
