package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-post/auth"
	"github.com/danielhkuo/quickly-post/cliparse"
	"github.com/danielhkuo/quickly-post/db"
	"github.com/danielhkuo/quickly-post/middleware"
	"github.com/danielhkuo/quickly-post/moderation"
	"github.com/danielhkuo/quickly-post/realtime"
	"github.com/danielhkuo/quickly-post/router"
	"github.com/danielhkuo/quickly-post/storage"
	"github.com/danielhkuo/quickly-post/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Uploaded images live on local disk and are served under /blobs/
	blobs, err := storage.NewDisk(cfg.BlobDir, cfg.PublicBaseURL)
	if err != nil {
		slog.Error("blob storage setup failed", "dir", cfg.BlobDir, "error", err)
		os.Exit(1)
	}

	// Realtime tokens are optional
	var issuer *realtime.Issuer
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := realtime.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		issuer = realtime.NewIssuer(realtime.NewRedisBackend(rdb), realtime.DefaultTTL)
		slog.Info("Realtime tokens enabled")
	} else {
		slog.Warn("REDIS_URL not set, realtime tokens disabled")
	}

	s := store.New(dbConn)
	authn := auth.NewAuthenticator(s, blobs, auth.NewSessions(cfg.JWTSecret))

	// Create router
	mux := router.NewRouter(router.Services{
		Store:    s,
		Authn:    authn,
		Gateway:  moderation.NewGateway(s, blobs, cfg.AdminPassword),
		Blobs:    blobs,
		Realtime: issuer,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "blobs", cfg.BlobDir)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
