// cmd/web/main.go
//
// Institute site backend – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load config (conf/.env → conf/institute.yaml → INSTITUTE_* env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the app: Vault (optional), store backend, accounts, data service.
//
//  4. Token issuer and session registry for the admin console.
//
//  5. Optional GeoLite2 reader for request enrichment.
//
//  6. Build the chi router and serve until SIGINT or SIGTERM.  On shutdown
//     the data service closes first so SSE streams end before the drain.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smskills/institute/internal/api"
	"github.com/smskills/institute/internal/app"
	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/logger"
	"github.com/smskills/institute/internal/requestinfo"
	"github.com/smskills/institute/internal/server"
	"github.com/smskills/institute/internal/session"
)

// version is stamped at build time with -ldflags "-X main.version=…".
var version = "dev"

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Store + data service ────────────────────────────────────────
	//
	a, err := app.Build(ctx, cfg, logOut)
	if err != nil {
		logOut.Fatalw("start data service", "err", err)
	}
	defer a.Close()

	//
	// ── 2.  Sessions ────────────────────────────────────────────────────
	//
	secret, err := a.TokenSecret(ctx)
	if err != nil {
		logOut.Fatalw("token secret", "err", err)
	}
	issuer, err := auth.NewIssuer(secret, cfg.Auth.TokenTTLOrDefault())
	if err != nil {
		logOut.Fatalw("token issuer", "err", err)
	}
	sessions := session.New(issuer, logOut, session.IdleTTL, session.MaxEntries)
	defer sessions.Close()

	//
	// ── 3.  GeoIP (optional) ────────────────────────────────────────────
	//
	var geo requestinfo.GeoLookup
	if cfg.GeoIP.DBPath != "" {
		rdr, err := requestinfo.OpenGeo(cfg.GeoIP.DBPath)
		if err != nil {
			logOut.Warnw("geoip disabled", "err", err)
		} else {
			defer rdr.Close()
			geo = rdr
		}
	}

	//
	// ── 4.  Router + server ─────────────────────────────────────────────
	//
	handler := api.NewRouter(api.Deps{
		Service:  a.Service,
		Sessions: sessions,
		Geo:      geo,
		HTTP:     cfg.HTTP,
		Log:      logOut,
		Version:  version,
		Started:  started,
	})
	srv := server.New(cfg.HTTP, handler)

	ln, err := net.Listen("tcp", cfg.HTTP.ListenAddr)
	if err != nil {
		logOut.Fatalw("listen", "addr", cfg.HTTP.ListenAddr, "err", err)
	}
	if err := server.Run(ctx, srv, ln, logOut, a.Service.Close); err != nil {
		logOut.Errorw("http server", "err", err)
	}
	logOut.Infow("bye", "uptime", time.Since(started).Round(time.Second).String())
}
