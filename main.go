package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"auctionary/internal/config"
	"auctionary/internal/passwords"
	"auctionary/internal/profanity"
	"auctionary/internal/repository"
	"auctionary/internal/server"
	"auctionary/utils"

	bidding "auctionary/internal/biddingService"
	item "auctionary/internal/itemService"
	question "auctionary/internal/questionService"
	user "auctionary/internal/userService"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.ConfigureLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		utils.Fatal("failed to configure logger", map[string]any{"error": err.Error()})
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database.Repository())
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"error": err.Error()})
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		utils.Fatal("failed to migrate database", map[string]any{"error": err.Error()})
	}

	router := server.SetupRouter(buildServices(cfg, db), server.Options{
		SessionHeader:  cfg.Auth.SessionHeader,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "driver": cfg.Database.Driver})
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server stopped unexpectedly", map[string]any{"error": err.Error()})
			stop()
			db.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		utils.Info("shutting down", map[string]any{"timeout": cfg.Server.ShutdownTimeout.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// buildServices wires the repository into the business services
func buildServices(cfg *config.Config, db *repository.DB) server.Services {
	repo := repository.NewSQLRepo(db)
	filter := profanity.NewFilter()
	hasher := passwords.NewHasher(cfg.Auth.PBKDF2Iterations)

	users := user.NewUserService(repo, repo, hasher)

	return server.Services{
		Users: users,
		Items: item.NewItemService(repo, repo, filter,
			item.WithPageLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)),
		Bids:      bidding.NewBiddingService(repo, repo),
		Questions: question.NewQuestionService(repo, repo, filter),
		Sessions:  users,
	}
}
