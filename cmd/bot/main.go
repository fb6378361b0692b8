package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"iceberg_farmer/internal/accounts"
	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/console"
	"iceberg_farmer/internal/engine"
	"iceberg_farmer/internal/httpapi"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/logger"
	"iceberg_farmer/internal/model"
	"iceberg_farmer/internal/notify"
	"iceberg_farmer/internal/provider/iceberg"
	"iceberg_farmer/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "iceberg:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "./config.yaml", "path to config.yaml")
	envPath := flag.String("env", ".env", "path to a dotenv file")
	flag.Parse()

	if err := config.LoadEnv(*envPath); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	bus := logbus.New(cfg.Log.Buffer).WithLogger(zl)
	defer bus.Close()

	console.PrintBanner(os.Stdout)

	accs, err := loadAccounts(cfg.Files, bus)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal *sqlite.Store
	if cfg.Storage.JournalPath != "" {
		journal, err = sqlite.Open(ctx, cfg.Storage.JournalPath)
		if err != nil {
			return fmt.Errorf("open pass journal: %w", err)
		}
		defer journal.Close()
	}

	var notifier notify.Notifier
	if cfg.Notify.Email.Enabled {
		en := notify.NewEmailNotifier(cfg.Notify.Email, bus)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = en.Close(closeCtx)
		}()
		notifier = en
	}

	prov := iceberg.New(iceberg.Options{
		Site:   cfg.Site,
		Ads:    cfg.Ads,
		Proxy:  cfg.Proxy,
		Limits: cfg.Limits,
		Bus:    bus,
	})

	pacing := engine.DefaultPacing()
	pacing.AccountPause = cfg.Loop.AccountPause()

	engOpts := engine.Options{
		Provider:        prov,
		Bus:             bus,
		Pacing:          pacing,
		VerifyProxy:     cfg.Proxy.VerifyEnabled(),
		CooldownSeconds: cfg.Loop.CooldownSeconds,
		Notifier:        notifier,
		Output:          os.Stdout,
	}
	if journal != nil {
		engOpts.Journal = journal
	}
	eng := engine.New(engOpts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(gctx, accs)
	})

	if cfg.Server.Addr != "" {
		apiOpts := httpapi.Options{Cfg: cfg, Bus: bus, Engine: eng}
		if journal != nil {
			apiOpts.Journal = journal
		}
		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpapi.New(apiOpts).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			zl.Info("status server listening", zap.String("addr", cfg.Server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stdout)
		bus.Log(logbus.LevelInfo, "Stopped by user", nil)
		return nil
	}
	return err
}

// loadAccounts leaves the success log to accounts.Load and reports failures.
func loadAccounts(files config.FilesConfig, bus *logbus.Bus) ([]model.Account, error) {
	accs, err := accounts.Load(files.Data, files.Proxy, bus)
	if err != nil {
		bus.Log(logbus.LevelError, "Unable to load accounts", map[string]any{"error": err.Error()})
		return nil, err
	}
	return accs, nil
}
