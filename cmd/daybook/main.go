package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calder-marchand/daybook/internal/database"
	"github.com/calder-marchand/daybook/internal/logging"
	"github.com/calder-marchand/daybook/internal/server"
	"github.com/calder-marchand/daybook/internal/session"
)

func main() {
	port := os.Getenv("DAYBOOK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DAYBOOK_DB_PATH")
	if dbPath == "" {
		dbPath = "daybook.db"
	}

	secret := os.Getenv("DAYBOOK_SECRET_KEY")
	if secret == "" {
		log.Fatal("DAYBOOK_SECRET_KEY must be set")
	}

	ttl := session.DefaultTTL
	if v := os.Getenv("DAYBOOK_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid DAYBOOK_SESSION_TTL: %v", err)
		}
		ttl = d
	}

	logger := logging.Setup(os.Getenv("DAYBOOK_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	sessions, err := session.NewManager(secret, ttl)
	if err != nil {
		log.Fatalf("failed to create session manager: %v", err)
	}

	srv := server.New(db, sessions, logger)

	// Drop stale rate-limit entries in the background
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Daybook running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
