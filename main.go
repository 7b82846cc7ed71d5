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

	"shuffle-app/internal/config"
	"shuffle-app/internal/session"
	"shuffle-app/internal/store"
	"shuffle-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
)

func main() {
	// shuffle-app hash-pin <pin> prints a value for ORGANIZER_PIN_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-pin" {
		hash, err := web.HashPIN(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	appStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("open store", "err", err)
		os.Exit(1)
	}

	svc := session.NewService(appStore, logger, cfg.Locale())
	server := web.NewServer(svc, logger, web.Options{OrganizerPINHash: cfg.OrganizerPINHash})
	if cfg.OrganizerPINHash == "" {
		logger.Warn("ORGANIZER_PIN_HASH is not set, mutating routes are open")
	}

	r := chi.NewRouter()
	r.Mount("/", server.Routes())

	if cfg.OnLambda() {
		logger.Info("starting in lambda mode", "function", cfg.LambdaFunction)
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	if err := serve(cfg.HTTPAddr, r, logger); err != nil {
		logger.Error("http server", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.OnLambda() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore picks postgres, then sqlite, then the in-memory store.
func openStore(cfg config.Config, logger *slog.Logger) (store.Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		logger.Info("using postgres store")
		return store.NewPostgresStore(cfg.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.PostgresMigrationsDir,
			Logger:        logger,
		})
	case cfg.DBPath != "":
		logger.Info("using sqlite store", "path", cfg.DBPath)
		return store.NewSQLiteStore(cfg.DBPath, store.SQLiteOptions{
			MigrationsDir: cfg.DBMigrationsDir,
			Logger:        logger,
		})
	default:
		logger.Info("using in-memory store")
		return store.NewMemoryStore(), nil
	}
}

func serve(addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
