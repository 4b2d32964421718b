package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/repository"
	"github.com/fundicaobk/equipcheck/server"
)

var (
	httpPort    string
	sqlitePath  string
	postgresDSN string
	serverName  string
)

func init() {
	flag.StringVar(&httpPort, "http-port", "3000", "HTTP API port")
	flag.StringVar(&sqlitePath, "sqlite", "data/equipcheck.db", "Path to the sqlite database file")
	flag.StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN; overrides sqlite when set")
	flag.StringVar(&serverName, "server-name", "equipcheck-local", "Name reported by the health probe")
}

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	repo := repository.NewRepository(logger)
	if postgresDSN != "" {
		if err := repo.ConnectPostgres(postgresDSN); err != nil {
			logger.Fatal("connecting database", zap.Error(err))
		}
	} else {
		if err := os.MkdirAll("data", 0o755); err != nil {
			logger.Fatal("creating data directory", zap.Error(err))
		}
		if err := repo.ConnectSqlite(sqlitePath); err != nil {
			logger.Fatal("connecting database", zap.Error(err))
		}
	}
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrating schema", zap.Error(err))
	}
	repo.Seed()

	srv := server.New(repo, logger, serverName)
	srv.Start(":" + httpPort)

	// Wait for interrupt, then drain in-flight requests.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
