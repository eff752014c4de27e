package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	digestservice "stock-news-aggregator/internal/digest/service"
	"stock-news-aggregator/internal/news/config"
	delivery "stock-news-aggregator/internal/news/delivery/http"
	_ "stock-news-aggregator/internal/news/docs"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var (
	configPath   string
	digestSymbol string
	digestLimit  int
	digestDryRun bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news service",
	Run:   runServe,
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Sends a one-shot news digest to Telegram",
	Run:   runDigest,
}

func setup() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News Service", logger.Field("name", cfg.App.Name))

	app, err := newNewsApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news pipeline", logger.ErrorField(err))
	}
	defer app.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(delivery.RequestID())
	e.Use(delivery.AccessLog(appLogger))

	e.GET("/health", delivery.Health)
	apiV1 := e.Group("/api/v1")
	newsHandler := delivery.NewNewsHandler(app.service, appLogger)
	newsHandler.RegisterRoutes(apiV1.Group("/news"))

	e.GET("/swagger/*", swagger.WrapHandler)

	if cfg.Digest.Enabled {
		digestSvc, err := newDigestService(cfg, app, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize digest scheduler", logger.ErrorField(err))
		}
		go digestSvc.Start(ctx)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runDigest(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	app, err := newNewsApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news pipeline", logger.ErrorField(err))
	}
	defer app.Close()

	if digestDryRun {
		digestSvc, err := digestservice.NewDigestService(app.service, nil, nil, 0, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize digest service", logger.ErrorField(err))
		}
		for _, m := range digestSvc.Build(ctx, digestSymbol, digestLimit) {
			fmt.Println(m)
		}
		return
	}

	digestSvc, err := newDigestService(cfg, app, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize digest service", logger.ErrorField(err))
	}
	if err := digestSvc.Send(ctx, digestSymbol, digestLimit); err != nil {
		appLogger.Fatal("Failed to send digest", logger.ErrorField(err))
	}
}

func newDigestService(cfg *config.Config, app *newsApp, appLogger *logger.Logger) (digestservice.DigestService, error) {
	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram client: %w", err)
	}
	return digestservice.NewDigestService(app.service, notifier, cfg.Digest.Schedules, cfg.Digest.PollingInterval, appLogger)
}

// @title Stock News Aggregator API
// @version 1.0
// @description Aggregated, classified financial news for the Vietnamese stock market.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{
		Use:   "news-service",
		Short: "Financial news aggregation and classification service",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-news.yaml", "Path to the configuration file")
	digestCmd.Flags().StringVarP(&digestSymbol, "symbol", "s", "", "Ticker symbol; latest headlines when empty")
	digestCmd.Flags().IntVarP(&digestLimit, "limit", "l", 10, "Number of articles")
	digestCmd.Flags().BoolVar(&digestDryRun, "dry-run", false, "Print the digest instead of sending it")

	rootCmd.AddCommand(serveCmd, digestCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing news-service CLI: %s\n", err)
		os.Exit(1)
	}
}
