package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/news"
	"MarketDashboard/internal/render"
	"MarketDashboard/internal/scheduler"
)

const clearScreen = "\033[H\033[2J"

func main() {
	trend := flag.String("trend", "", "indices trend label (Minute, Hourly, Daily, Weekly, Monthly)")
	symbol := flag.String("symbol", "", "stock symbol, defaults to market.default_symbol")
	category := flag.String("category", "", "news category")
	days := flag.Int("days", 0, "stock lookback in days, defaults to one year")
	noClear := flag.Bool("no-clear", false, "append frames instead of redrawing the screen")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

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

	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "alpaca":
		fetcher = collector.NewAlpacaFetcher(cfg.DataSource.APIKey, cfg.DataSource.APISecret, cfg.DataSource.DataURL)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	var headlines dashboard.HeadlineSource
	if cfg.News.APIKey != "" {
		headlines = news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.Proxy)
	}
	svc := dashboard.NewService(fetcher, headlines, cfg)

	req := dashboard.PageRequest{
		Trend:    *trend,
		Category: *category,
		Stock:    dashboard.StockRequest{Symbol: *symbol},
	}
	if *days > 0 {
		req.Stock = svc.DefaultStockRequest(req.Stock)
		req.Stock.Start = req.Stock.End.AddDate(0, 0, -*days)
	}

	draw := func(p *dashboard.Page) error {
		if !*noClear {
			fmt.Fprint(os.Stdout, clearScreen)
		}
		return render.WriteText(os.Stdout, p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driver := scheduler.NewDriver(ctx, svc, req, draw, cfg.RefreshInterval())
	if err := driver.Start(); err != nil {
		log.Fatalf("[FATAL] start refresh: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		driver.Stop()
	case <-driver.Done():
	}
	// Wait for a frame still being drawn.
	<-driver.Cron.Stop().Done()
}
