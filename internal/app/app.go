package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxconv/internal/adapters"
	"fxconv/internal/adapters/postgres"
	"fxconv/internal/adapters/source"
	"fxconv/internal/api"
	"fxconv/internal/config"
	"fxconv/internal/domain"
	"fxconv/internal/platform/db"
	httpserver "fxconv/internal/platform/http"
	"fxconv/internal/rate"
	"fxconv/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, first document load)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	symbols, err := loadSymbols(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to load supported currencies")
		return err
	}
	logrus.WithField("count", symbols.Len()).Info("✅ Supported currencies loaded")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Rate sources
	primary, err := source.NewCachedSource(
		source.NewHTTPSource(baseHTTPClient, appCfg.Source.PrimaryURL),
		appCfg.Source.CacheMaxItems,
		time.Duration(appCfg.Source.CacheTTLSeconds)*time.Second,
	)
	if err != nil {
		return err
	}
	defer primary.Close()
	backup := source.NewFileSource(appCfg.Source.BackupPath)

	anchor, err := symbols.Parse(appCfg.Source.Anchor)
	if err != nil {
		return fmt.Errorf("invalid anchor currency %q: %w", appCfg.Source.Anchor, err)
	}
	format := rate.Format{Precision: appCfg.Format.Precision, DecimalSeparator: appCfg.Format.DecimalSeparator}

	build := func(buildCtx context.Context) (*rate.Converter, error) {
		return rate.NewConverter(buildCtx,
			rate.WithPrimary(primary),
			rate.WithBackup(backup),
			rate.WithSymbols(symbols),
			rate.WithAnchor(anchor),
			rate.WithFormat(format),
		)
	}

	// Services
	rateService, err := rate.NewService(startupCtx, build, primary)
	if err != nil {
		logrus.WithError(err).Error("Failed to load rate table")
		return err
	}
	logrus.Info("✅ Rate table loaded")

	if err = applyBase(rateService, symbols, appCfg.Converter.Base); err != nil {
		return err
	}

	if appCfg.Scheduler.RefreshIntervalSec > 0 {
		scheduler := rate.NewScheduler(rateService, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
		// Ensure scheduler stops before the sources are closed
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	rateHandler := handler.NewRateHandler(symbols, rateService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// loadSymbols returns the closed set of currency codes the documents may quote
func loadSymbols(ctx context.Context, cfg *config.AppConfig) (*domain.SymbolSet, error) {
	if cfg.Currencies.Source != "postgres" {
		return domain.ISO4217(), nil
	}

	pool, err := db.Connect(ctx, cfg.DbServer)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	return loadSymbolsFrom(ctx, postgres.NewCurrencyRepository(pool))
}

func loadSymbolsFrom(ctx context.Context, repo adapters.CurrencyRepository) (*domain.SymbolSet, error) {
	codes, err := repo.ListCodes(ctx)
	if err != nil {
		return nil, err
	}
	set := domain.NewSymbolSet(codes)
	if set.Len() == 0 {
		return nil, fmt.Errorf("no supported currencies available")
	}
	return set, nil
}

func applyBase(svc *rate.Service, symbols *domain.SymbolSet, rawBase string) error {
	if rawBase == "" {
		return nil
	}
	base, err := symbols.Parse(rawBase)
	if err != nil {
		return fmt.Errorf("invalid base currency %q: %w", rawBase, err)
	}
	if err = svc.SetBase(base); err != nil {
		return fmt.Errorf("failed to set base currency: %w", err)
	}
	logrus.WithField("base", base).Info("Base currency set")
	return nil
}
