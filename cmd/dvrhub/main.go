package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	sheetsadapter "github.com/ericfisherdev/dvrhub/internal/adapter/driven/sheets"
	sqliteadapter "github.com/ericfisherdev/dvrhub/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/dvrhub/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/dvrhub/internal/adapter/driving/web"
	"github.com/ericfisherdev/dvrhub/internal/application"
	"github.com/ericfisherdev/dvrhub/internal/config"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"store", cfg.Store,
		"contribute_rate", cfg.ContributeRate,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect the record store. A store that cannot be reached at startup
	// is fatal.
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Create services.
	lookupSvc := application.NewLookupService(store, slog.Default())
	contributeSvc := application.NewContributeService(store, slog.Default())

	// 5. Register API and GUI routes.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(lookupSvc, contributeSvc, cfg.ContributeRate, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(lookupSvc, contributeSvc, cfg.ContributeRate, cfg.SecureCookies, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("dvrhub started", "listen_addr", cfg.ListenAddr, "store", cfg.Store)

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openStore builds the configured RecordStore. The returned func releases any
// resources the store holds.
func openStore(ctx context.Context, cfg *config.Config) (driven.RecordStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("database opened", "path", db.Path())

		closeDB := func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}
		return sqliteadapter.NewRecordRepo(db), closeDB, nil

	default:
		creds, source, err := cfg.ServiceAccountJSON()
		if err != nil {
			return nil, nil, err
		}
		slog.Info("service account credentials loaded", "source", source)

		store, err := sheetsadapter.Connect(ctx, sheetsadapter.Config{
			SpreadsheetName: cfg.SheetName,
			SpreadsheetID:   cfg.SheetID,
			Worksheet:       cfg.Worksheet,
			CredentialsJSON: creds,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to spreadsheet %q: %w", cfg.SheetName, err)
		}
		slog.Info("spreadsheet connected",
			"spreadsheet_id", store.SpreadsheetID(),
			"worksheet", store.Worksheet(),
		)
		return store, func() {}, nil
	}
}
