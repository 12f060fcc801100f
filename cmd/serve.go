package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/ai/gemini"
	"github.com/jobscout/jobscout/internal/assistant"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/matching"
	"github.com/jobscout/jobscout/internal/secrets"
	"github.com/jobscout/jobscout/internal/seed"
	"github.com/jobscout/jobscout/internal/server"
	"github.com/jobscout/jobscout/internal/service"
	"github.com/jobscout/jobscout/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the jobscout API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := getConfig()
	if err != nil {
		log.Fatal("unable to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := store.NewSQLite(cfg.Server.Database)
	if err != nil {
		log.Fatal("unable to open database", zap.Error(err))
	}
	defer repo.Close()

	jwtSecret, err := secrets.Load(secrets.Source{
		Name:  "jwt secret",
		Value: cfg.Auth.JWTSecret,
		File:  cfg.Auth.JWTSecretFile,
		Env:   "JOBSCOUT_JWT_SECRET",
	})
	if err != nil {
		log.Fatal("unable to load jwt secret, set JOBSCOUT_JWT_SECRET or auth.jwt-secret-file", zap.Error(err))
	}

	completer, err := newCompleter(ctx, cfg.AI, log)
	if err != nil {
		log.Warn("ai completions unavailable, using deterministic fallbacks", zap.Error(err))
	}

	maxLogLen := cfg.AI.Gemini.MaxLogLength
	router := assistant.New(completer, log, maxLogLen)
	matcher := matching.New(completer, log, maxLogLen)
	generator := seed.NewGenerator(time.Now().UnixNano())

	services := server.Services{
		Auth:         service.NewAuth(repo, []byte(jwtSecret), time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, log),
		Assistant:    service.NewAssistant(repo, router, log),
		Jobs:         service.NewJobs(repo, generator, log),
		Matches:      service.NewMatches(repo, matcher, log),
		Resumes:      service.NewResumes(repo, log),
		Applications: service.NewApplications(repo, log),
	}

	if err := services.Jobs.Seed(ctx, cfg.Seed.Jobs); err != nil {
		log.Fatal("unable to seed postings", zap.Error(err))
	}

	var scheduler *cron.Cron
	if spec := cfg.Seed.RefreshCron; spec != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(spec, func() {
			if err := services.Jobs.Refresh(context.Background(), cfg.Seed.Jobs); err != nil {
				log.Error("posting refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			log.Fatal("invalid refresh schedule", zap.String("cron", spec), zap.Error(err))
		}
		scheduler.Start()
		log.Info("posting refresh scheduled", zap.String("cron", spec))
	}

	srv := server.New(cfg.Server.ListenAddress, services, repo, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCompleter builds the configured completion backend. A disabled backend
// returns (nil, nil); the assistant and matcher treat a nil completer as
// "use deterministic fallbacks".
func newCompleter(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Completer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	return gemini.New(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, log)
}
