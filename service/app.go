package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quill/app/auth"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/routes"
	"quill/app/services"
	"quill/config"
	"quill/logging"
)

// App is the wired application: store, services and HTTP handler.
type App struct {
	Handler  http.Handler
	Store    *repositories.Store
	Accounts *services.AccountService
	Admins   *services.AdminService
	close    func() error
}

// NewApp opens the configured store and builds every service on top of it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	return newAppWithStore(cfg, store, closeStore, log), nil
}

func newAppWithStore(cfg *config.Config, store *repositories.Store, closeStore func() error, log logging.Logger) *App {
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	accounts := services.NewAccountService(
		store.Users,
		hasher,
		tokens,
		auth.NewVerificationTokens(cfg.Auth.VerificationTTL),
		newMailer(cfg.Mail, log),
		log,
		services.AccountOptions{
			BaseURL:              cfg.Mail.BaseURL,
			RequireVerifiedEmail: cfg.Policy.RequireVerifiedEmail,
			AutoVerify:           cfg.Policy.AutoVerifySignups,
			MailPolicy:           services.MailPolicy(cfg.Policy.SignupMailPolicy),
		},
	)
	admins := services.NewAdminService(store.Users, store.Admins, accounts, hasher, tokens, log)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Max > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	handler := routes.SetupRoutes(routes.Deps{
		Accounts:    accounts,
		Admins:      admins,
		Posts:       services.NewPostService(store.Posts, store.Comments),
		Comments:    services.NewCommentService(store.Comments, store.Posts),
		Tokens:      tokens,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	return &App{
		Handler:  handler,
		Store:    store,
		Accounts: accounts,
		Admins:   admins,
		close:    closeStore,
	}
}

// Close releases the store.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// RunAppServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func RunAppServer(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error(context.Background(), "failed to close store", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Info(ctx, "starting blog API", "addr", srv.Addr)
	return serve(ctx, srv, cfg.ShutdownTimeout, log)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
