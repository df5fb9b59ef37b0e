package main

import (
	"context"
	"github.com/MarselErlan/supabase-02-api/config"
	"github.com/MarselErlan/supabase-02-api/cronJobs"
	"github.com/MarselErlan/supabase-02-api/database"
	"github.com/MarselErlan/supabase-02-api/dbHelpers"
	"github.com/MarselErlan/supabase-02-api/handlers"
	"github.com/MarselErlan/supabase-02-api/server"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	serviceTitle   = "Item Management API"
	serviceVersion = "1.0.0"
)

func setupLogger(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration with error: %+v", err)
	}
	setupLogger(cfg)
	logrus.Infof("starting %s %s", serviceTitle, serviceVersion)

	if err := run(cfg); err != nil {
		logrus.Fatalf("Failed to run server with error: %+v", err)
	}
	logrus.Info("server stopped")
}

func run(cfg *config.Config) error {
	db, err := database.ConnectAndMigrate(cfg.PostgresURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.Errorf("Failed to close database with error: %+v", err)
		}
	}()
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	logrus.Print("migration successful!!")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// create server instance
	srv := server.SetupRoutes(handlers.NewItemHandler(dbHelpers.NewItemHelper(db)))

	egp, ctx := errgroup.WithContext(ctx)
	egp.Go(func() error {
		logrus.Print("Server started at ", cfg.Addr())
		return srv.Run(ctx, cfg.Addr(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	})
	if cfg.KeepAlive != "" {
		keepAlive, err := cronJobs.InitiateKeepAlive(db, cfg.KeepAlive)
		if err != nil {
			logrus.Error("error from keepalive job", err)
		} else {
			// no pings while the server drains and the pool closes
			egp.Go(func() error {
				<-ctx.Done()
				keepAlive.Stop()
				return nil
			})
		}
	}
	return egp.Wait()
}
