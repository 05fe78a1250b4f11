// internal/app/app.go
//
// Process wiring shared by cmd/web and cmd/institutectl.
//
// Start-up sequence
// -----------------
//
//  1. Vault client when VAULT_ADDR is set; `vault:` values resolve through it.
//
//  2. Store backend from config.Store (password resolved first).
//
//  3. Console accounts from config.Auth.Users, or the development seed
//     accounts with a loud warning.
//
//  4. Login throttle, authenticator, and finally the data service.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/datasvc"
	"github.com/smskills/institute/internal/store"
	"github.com/smskills/institute/internal/vault"
)

// App holds the long-lived pieces built from a Config.
type App struct {
	Config  *config.Config
	Vault   *vault.Client // nil when Vault is not configured
	Store   store.Store
	Service *datasvc.Service
	Log     *zap.SugaredLogger
}

// Build wires the store and data service described by cfg.
func Build(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	a := &App{Config: cfg, Log: log}

	//
	// ── 1.  Secrets ─────────────────────────────────────────────────────
	//
	if vault.Configured() {
		vc, err := vault.New(ctx, log)
		if err != nil {
			return nil, fmt.Errorf("app: vault: %w", err)
		}
		a.Vault = vc
	}

	//
	// ── 2.  Store ───────────────────────────────────────────────────────
	//
	sc := cfg.Store
	pw, err := a.Vault.Resolve(ctx, sc.Password)
	if err != nil {
		return nil, fmt.Errorf("app: store password: %w", err)
	}
	sc.Password = pw
	st, err := store.Open(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}
	a.Store = st
	log.Infow("store online", "backend", sc.Backend)

	//
	// ── 3.  Accounts and data service ───────────────────────────────────
	//
	users, err := Users(cfg.Auth, log)
	if err != nil {
		st.Close()
		return nil, err
	}
	throttle := auth.NewThrottle(cfg.Auth.LoginRate, cfg.Auth.LoginBurst, auth.DefaultThrottleEntries)
	authn, err := auth.NewAuthenticator(users, throttle, log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	svc, err := datasvc.New(ctx, st, authn, log, datasvc.Options{
		EnquiryLatency: cfg.Service.EnquiryLatency,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	a.Service = svc
	return a, nil
}

// Close stops the service and releases the store.
func (a *App) Close() error {
	if a.Service != nil {
		a.Service.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Users converts configured accounts, falling back to the seed accounts
// when none are configured.
func Users(cfg config.Auth, log *zap.SugaredLogger) ([]content.AdminUser, error) {
	if len(cfg.Users) == 0 {
		log.Warnw("no console users configured, using development seed accounts")
		users, err := auth.SeedUsers(bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("app: seed users: %w", err)
		}
		return users, nil
	}
	out := make([]content.AdminUser, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		out = append(out, content.AdminUser{
			ID:           u.ID,
			Username:     u.Username,
			Role:         u.Role,
			PasswordHash: u.PasswordHash,
		})
	}
	return out, nil
}

// TokenSecret resolves the signing secret.  An empty value yields a random
// per-process secret, which logs everyone out on restart.
func (a *App) TokenSecret(ctx context.Context) ([]byte, error) {
	s, err := a.Vault.Resolve(ctx, a.Config.Auth.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("app: token secret: %w", err)
	}
	if s != "" {
		return []byte(s), nil
	}
	a.Log.Warnw("auth.token_secret not set, generating an ephemeral secret")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Join(errors.New("app: token secret"), err)
	}
	return b, nil
}
