package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klxtra/activities-api/internal/adapters/httpapi"
	memactivityrepo "github.com/klxtra/activities-api/internal/adapters/memory/activityrepo"
	memidempotency "github.com/klxtra/activities-api/internal/adapters/memory/idempotency"
	memmailer "github.com/klxtra/activities-api/internal/adapters/memory/mailer"
	memregistrationrepo "github.com/klxtra/activities-api/internal/adapters/memory/registrationrepo"
	memstudentrepo "github.com/klxtra/activities-api/internal/adapters/memory/studentrepo"
	postgres "github.com/klxtra/activities-api/internal/adapters/postgres"
	pgactivityrepo "github.com/klxtra/activities-api/internal/adapters/postgres/activityrepo"
	pgidempotency "github.com/klxtra/activities-api/internal/adapters/postgres/idempotency"
	pgregistrationrepo "github.com/klxtra/activities-api/internal/adapters/postgres/registrationrepo"
	pgstudentrepo "github.com/klxtra/activities-api/internal/adapters/postgres/studentrepo"
	"github.com/klxtra/activities-api/internal/adapters/resendmail"
	"github.com/klxtra/activities-api/internal/app/activities"
	"github.com/klxtra/activities-api/internal/app/adminview"
	"github.com/klxtra/activities-api/internal/app/profiles"
	"github.com/klxtra/activities-api/internal/app/registrations"
	"github.com/klxtra/activities-api/internal/app/roles"
	"github.com/klxtra/activities-api/internal/platform/auth/jwtverifier"
	platformclock "github.com/klxtra/activities-api/internal/platform/clock"
	"github.com/klxtra/activities-api/internal/platform/config"
	activityrepoport "github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	idempotencyport "github.com/klxtra/activities-api/internal/ports/out/idempotency"
	mailerport "github.com/klxtra/activities-api/internal/ports/out/mailer"
	registrationrepoport "github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
	studentrepoport "github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Auth configuration:
	// - Production: require JWT_* env vars and enforce bearer auth
	// - Local dev: set AUTH_MODE=debug to build identities from X-Debug-* headers
	var authMW func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case config.AuthModeDebug:
		authMW = httpapi.NewDevAuthMiddleware()
	default:
		jwtCfg, err := config.LoadJWTConfigFromEnv()
		if err != nil {
			log.Error("invalid auth config", "error", err)
			os.Exit(1)
		}
		authMW = httpapi.NewAuthMiddleware(jwtverifier.New(jwtCfg))
	}

	clk := platformclock.NewSystemClock()

	var (
		studentRepo  studentrepoport.Repository
		activityRepo activityrepoport.Repository
		regRepo      registrationrepoport.Repository
		idemStore    idempotencyport.Store
		cleanup      func()
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Error("invalid postgres config", "error", err)
			os.Exit(1)
		}
		cleanup = pool.Close

		studentRepo = pgstudentrepo.NewRepo(pool)
		activityRepo = pgactivityrepo.NewRepo(pool)
		regRepo = pgregistrationrepo.NewRepo(pool)
		idemStore = pgidempotency.NewStore(pool)
	default:
		studentRepo = memstudentrepo.NewRepo()
		activityRepo = memactivityrepo.NewRepo()
		regRepo = memregistrationrepo.NewRepo()
		idemStore = memidempotency.NewStore()
	}

	if cleanup != nil {
		defer cleanup()
	}

	var m mailerport.Mailer
	if cfg.ResendAPIKey != "" {
		m = resendmail.NewMailer(cfg.ResendAPIKey, cfg.MailFrom, log)
	} else {
		log.Info("no RESEND_API_KEY set; recording emails in memory only")
		m = memmailer.NewRecorder()
	}

	resolver := roles.NewResolver(cfg.AdminEmails)

	api := httpapi.NewServer(
		profiles.NewService(studentRepo, resolver, clk),
		activities.NewService(activityRepo, clk),
		registrations.NewService(regRepo, activityRepo, clk),
		adminview.NewService(activityRepo, regRepo, studentRepo),
		resolver,
		m,
		idemStore,
		log,
	)

	handler := httpapi.NewRouter(api, authMW, httpapi.RouterConfig{
		FrontendOrigin: cfg.FrontendOrigin,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", "port", cfg.Port, "storage", cfg.StorageBackend, "auth_mode", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
