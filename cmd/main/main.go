package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-dashboard/src/analysis"
	"finance-dashboard/src/config"
	datasource "finance-dashboard/src/data_source"
	"finance-dashboard/src/data_source/yahoo"
	"finance-dashboard/src/export"
	"finance-dashboard/src/interfaces"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"
	"finance-dashboard/src/network"
	"finance-dashboard/src/server"
	"finance-dashboard/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// 2. Setup Components
	var cache interfaces.IPriceCache

	switch config.Storage.DBType {
	case "postgres":
		cache, err = storage.NewPostgresCache(config.MConfig, appLogger)
	default:
		// Default to SQLite
		cache, err = storage.NewSQLiteCache(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init cache: %v", err)
	}
	if err := cache.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate cache: %v", err)
	}
	defer cache.Close()

	// 3. Setup Components
	var networkManage interfaces.INetworkManager = network.NewManager(config.MConfig, appLogger)
	var source interfaces.IPriceSource = yahoo.NewSource(config.MConfig, networkManage)
	fetcher := datasource.NewFetchManager(source, cache, config.MConfig)

	dateRange, err := config.DateRange()
	if err != nil {
		appLogger.Critical("Invalid analysis range: %v", err)
	}

	pipeline := analysis.NewPipeline(dateRange)
	pipeline.Policy = analysis.AlignPolicy(config.Alignment)
	pipeline.Benchmark = config.Benchmark

	// 4. Refresh closure: fetch -> compute -> export
	refresh := func() (*models.MDashboardData, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		tickers := config.Tickers
		if config.Benchmark != "" {
			tickers = append(append([]string{}, config.Tickers...), config.Benchmark)
		}

		raw, err := fetcher.FetchAll(ctx, tickers, dateRange.Start, dateRange.End)
		if err != nil {
			return nil, err
		}

		data, err := pipeline.Run(raw)
		if err != nil {
			return nil, err
		}

		if config.Export.OutputDir != "" {
			exporter := export.NewExporter(config.Export.Precision)
			if err := export.WriteFiles(config.Export.OutputDir, data, exporter); err != nil {
				appLogger.Error("CSV export failed: %v", err)
			} else {
				appLogger.Info("Exported CSV artifacts to %s", config.Export.OutputDir)
			}
		}

		cache.CleanupExpired()
		return data, nil
	}

	// 5. Initial Computation
	appLogger.Info("Computing initial dashboard...")
	data, err := refresh()
	if err != nil {
		appLogger.Critical("Initial computation failed: %v", err)
	}
	appLogger.Info("Dashboard ready: %d dates, %d tickers", data.Aligned.NumRows(), len(data.Aligned.Tickers))

	if !config.ServerEnabled {
		// One-shot mode: artifacts are on disk, nothing left to serve
		return
	}

	// 6. Start Server
	srv := server.NewDashboardServer(config.MConfig, appLogger, refresh)
	srv.SetLatest(data)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down...")
}
