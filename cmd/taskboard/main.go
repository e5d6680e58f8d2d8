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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/handlers"
	"github.com/taskboard-dev/taskboard/internal/logger"
	"github.com/taskboard-dev/taskboard/internal/router"
	"github.com/taskboard-dev/taskboard/internal/store"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/taskboard.yaml)")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg, err := logger.New(cfg.Log)

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	log := lg.Sugar()

	gin.SetMode(cfg.Mode)

	database, err := db.Connect(cfg.Database, log)

	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close(database)

	if err = db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	h := handlers.New(store.New(database), log)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.NewRouter(cfg, h, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server starting", "addr", cfg.Addr())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http server shutdown failed: %v", err)
	}

	log.Info("goodbye")
}
