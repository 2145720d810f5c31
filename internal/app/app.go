package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxdisplay/internal/adapters/cache"
	"fxdisplay/internal/adapters/httpclient"
	"fxdisplay/internal/adapters/postgres"
	"fxdisplay/internal/api"
	"fxdisplay/internal/api/handler"
	"fxdisplay/internal/config"
	"fxdisplay/internal/conversion"
	"fxdisplay/internal/currency"
	"fxdisplay/internal/display"
	"fxdisplay/internal/domain"
	"fxdisplay/internal/platform/db"
	httpserver "fxdisplay/internal/platform/http"
	"fxdisplay/internal/rate"
	"fxdisplay/internal/settings"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run(configFile string) error {
	appCfg, err := config.Init(configFile)
	if err != nil {
		return err
	}
	setupLogger(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, warm-up)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if appCfg.DbServer.Migrate {
		if err = db.Migrate(startupCtx, pool); err != nil {
			logrus.WithError(err).Error("Failed to apply migrations")
			return err
		}
		logrus.Info("✅ Migrations applied")
	}

	clock := clockwork.NewRealClock()
	registry := currency.NewRegistry()

	// Repositories
	historyRepo := postgres.NewRateHistoryRepository(pool)
	preferenceRepo := postgres.NewPreferenceRepository(pool)

	// Base HTTP client (configurable timeout)
	httpTimeout := appCfg.RequestTimeout()
	if httpTimeout <= 0 {
		httpTimeout = rate.DefaultRequestTimeout
	}
	rateClient := httpclient.NewExchangeRateClient(
		&http.Client{Timeout: httpTimeout},
		strings.TrimSuffix(appCfg.RatesAPI.BaseURL, "/"),
	)

	// Rates
	store := rate.NewStore(clock, rate.StoreConfig{
		StaleAfter:    appCfg.Rates.StaleAfter,
		AsOfTolerance: appCfg.Rates.AsOfTolerance,
	})
	refresher := rate.NewRefresher(store, rateClient, historyRepo, registry.IsSupported, supportedBases(registry, appCfg.Rates.Bases), httpTimeout)
	rateService := rate.NewService(store, historyRepo, refresher)

	if seeded, warmErr := rateService.WarmUp(startupCtx); warmErr != nil {
		logrus.WithError(warmErr).Warn("Rate history warm-up failed, starting with an empty store")
	} else {
		logrus.WithField("rates", seeded).Info("✅ Rate store warmed up from history")
	}

	scheduler := rate.NewScheduler(refresher, clock, appCfg.RefreshInterval(), appCfg.Scheduler.RunOnStart)
	// Ensure scheduler stops before DB pool closes
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

	// Sessions
	sessionCache, err := cache.NewSessionCache(appCfg.Sessions.MaxItems, appCfg.Sessions.TTL)
	if err != nil {
		logrus.WithError(err).Error("Failed to create session cache")
		return err
	}
	defer sessionCache.Close()
	settingsService := settings.NewService(sessionCache, registry, rateService, clock, defaultSettings(appCfg.Display.Defaults))

	// Conversion and display
	engine := conversion.NewEngine(rateService, registry)
	presenter := display.NewPresenter(registry, engine, clock, appCfg.Display.MaxVisibleBadges)

	// Handlers and router
	h := handler.NewHandler(registry, rateService, engine, settingsService, presenter, preferenceRepo)
	router := api.NewRouter(h)

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

func setupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// supportedBases normalizes configured base currencies and drops the ones
// the registry does not know.
func supportedBases(registry *currency.Registry, raw []string) []domain.CurrencyCode {
	bases := make([]domain.CurrencyCode, 0, len(raw))
	seen := make(map[domain.CurrencyCode]struct{}, len(raw))
	for _, r := range raw {
		code := domain.NormalizeCode(r)
		if _, dup := seen[code]; dup {
			continue
		}
		if !registry.IsSupported(code) {
			logrus.WithField("base", r).Warn("Skipping unsupported refresh base")
			continue
		}
		seen[code] = struct{}{}
		bases = append(bases, code)
	}
	return bases
}

func defaultSettings(d config.Defaults) domain.CurrencySettings {
	return domain.CurrencySettings{
		BaseCurrency: domain.NormalizeCode(d.BaseCurrency),
		FxSource:     domain.RateSource(strings.ToLower(d.FxSource)),
		RoundingMode: domain.RoundingMode(strings.ToLower(d.RoundingMode)),
		Timezone:     d.Timezone,
	}
}
