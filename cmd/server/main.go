// Command main is the entry point for the ForgeHub backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forgehub/internal/config"
	"forgehub/internal/server"
)

// @title ForgeHub API
// @version 1.0
// @description Marketplace API for community-built software projects with reviews, developer profiles, and moderation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@forgehub.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8420
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	app := srv.NewApp()

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Drain in-flight requests on SIGINT/SIGTERM before releasing DB/Redis.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
	}()

	log.Printf("ForgeHub API listening on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
