package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketDashboard/internal/api"
	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/news"
	"MarketDashboard/internal/notifier"
	"MarketDashboard/internal/scheduler"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketDashboard starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	svc := newService(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := api.NewAPIHandler(svc).NewServer(cfg.Server.Addr)
	go func() {
		log.Printf("[INFO] dashboard listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		router := scheduler.NewCommandRouter(svc)
		go tn.StartPolling(ctx, router.HandleCommand)
		log.Println("[INFO] Telegram polling started")

		go func() {
			if err := tn.SendWithRetry(ctx, notifier.FormatSession(svc.Session()), 3); err != nil {
				log.Printf("[ERROR] send startup status: %v", err)
			}
		}()
	} else {
		log.Println("[INFO] Telegram not configured, chat commands disabled")
	}

	log.Println("[INFO] MarketDashboard is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] MarketDashboard stopped")
}

func newService(cfg *config.Config) *dashboard.Service {
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "alpaca":
		fetcher = collector.NewAlpacaFetcher(cfg.DataSource.APIKey, cfg.DataSource.APISecret, cfg.DataSource.DataURL)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var headlines dashboard.HeadlineSource
	if cfg.News.APIKey != "" {
		headlines = news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.Proxy)
	}
	return dashboard.NewService(fetcher, headlines, cfg)
}
