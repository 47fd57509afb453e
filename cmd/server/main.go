// Package main initializes and starts the passgen HTTP server, setting up
// configuration, logging, the fingerprint store, the generator, services,
// handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/passgen/internal/config"
	"github.com/atinyakov/passgen/internal/db"
	"github.com/atinyakov/passgen/internal/fingerprint"
	"github.com/atinyakov/passgen/internal/generator"
	"github.com/atinyakov/passgen/internal/logger"
	"github.com/atinyakov/passgen/internal/repository"
	"github.com/atinyakov/passgen/internal/server/handler/http"
	"github.com/atinyakov/passgen/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	repo, err := newRepository(options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init fingerprint store", zap.Error(err))
	}

	if options.Pepper == "" {
		zapLogger.Warn("fingerprint pepper is empty; set FINGERPRINT_PEPPER")
	}
	store := service.NewFingerprintStore(repo, fingerprint.NewHasher(options.Pepper, 0))

	gen := generator.New(store,
		generator.WithTimeout(options.GenerationTimeout()),
		generator.WithLogger(zapLogger.Named("generator")),
	)
	passwordService := service.NewPasswordService(gen, store)

	passwordHandler := &http.PasswordHandler{PasswordService: passwordService, Logger: zapLogger}
	pingHandler := &http.PingHandler{Version: version}

	router := http.NewRouter(passwordHandler, pingHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
		if err := server.ListenAndServeTLS(options.TLSCert, options.TLSKey); err != nil {
			zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
		}
		return
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// newRepository picks PostgreSQL, then Redis, then process memory.
func newRepository(options *config.Options, log *zap.Logger) (service.FingerprintRepository, error) {
	switch {
	case options.DatabaseDSN != "":
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres fingerprint store")
		return repository.NewPostgresFingerprintRepository(postgresDB), nil
	case options.RedisURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := repository.NewRedisClient(ctx, options.RedisURL)
		if err != nil {
			return nil, err
		}
		log.Info("using redis fingerprint store")
		return repository.NewRedisFingerprintRepository(client, ""), nil
	default:
		log.Warn("no database configured; issued passwords are kept in memory only")
		return repository.NewMemoryFingerprintRepository(), nil
	}
}
