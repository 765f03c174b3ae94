package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/router"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/stores"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Run schema migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	if migrateOnStart {
		if err := database.Migrate(e.db); err != nil {
			return err
		}
		e.log.Info("schema is up to date")
	}
	if e.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	resumes, err := storage.New(ctx, e.cfg.Storage, e.log)
	if err != nil {
		return fmt.Errorf("resume storage: %w", err)
	}
	llm, err := services.NewLLMService(ctx, e.cfg.LLM)
	if err != nil {
		e.log.WithError(err).Warn("job draft extraction disabled")
		llm = nil
	}
	limiter, closeLimiter := newLimiter(e.cfg.Redis, e.log)
	defer closeLimiter()

	st := stores.New(e.db)
	tokens := auth.NewJWTService(e.cfg.Auth.JWTSecret, e.cfg.Auth.TokenTTL)
	applications := services.NewApplicationService(st, e.log)

	handler := router.New(router.Deps{
		Log:            e.log,
		Tokens:         tokens,
		Limiter:        limiter,
		AllowedOrigins: e.cfg.HTTP.AllowedOrigins,
		TrustedProxies: e.cfg.HTTP.TrustedProxies,
		CookieSecure:   e.cfg.HTTP.CookieSecure,
		Auth:           services.NewAuthService(st, auth.BcryptHasher{}, tokens, e.log),
		Jobs:           services.NewJobService(st, e.log),
		Applications:   applications,
		Students:       services.NewStudentService(st, resumes, e.cfg.HTTP.MaxResumeBytes, e.log),
		Categories:     services.NewCategoryService(st, e.log),
		Exports:        services.NewExportService(applications),
		Search:         services.NewSearchService(st),
		Stats:          services.NewStatsService(st),
		LLM:            llm,
	})

	srv := &http.Server{
		Addr:    ":" + e.cfg.HTTP.Port,
		Handler: handler,
	}
	errCh := make(chan error, 1)
	go func() {
		e.log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	e.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newLimiter uses redis when an address is configured so limits hold across
// replicas, and process memory otherwise.
func newLimiter(cfg config.RedisConfig, log logrus.FieldLogger) (ratelimit.Limiter, func()) {
	if cfg.Addr == "" {
		return ratelimit.NewMemoryLimiter(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	log.WithField("addr", cfg.Addr).Info("login rate limits kept in redis")
	return ratelimit.NewRedisLimiter(client, log), func() { _ = client.Close() }
}
