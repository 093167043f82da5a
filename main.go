package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dibs-api/app"
	"dibs-api/config"
)

func main() {
	log.Println("Starting Dibs API...")

	// a. Cargar configuración
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded: Port=%s, DBDriver=%s, MemcachedHost=%s, ClientOrigin=%s",
		cfg.Port, cfg.DBDriver, cfg.MemcachedHost, cfg.ClientOrigin)

	// b. Conectar el store y arrancar el servidor
	application := app.New(cfg)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	err = application.Start(startCtx)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to start Dibs API: %v", err)
	}
	log.Printf("Dibs API started successfully on %s", application.Addr())

	// c. Esperar una señal o un error del servidor
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("Received %s", sig)
	case err := <-application.Done():
		if err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}

	log.Println("Shutting down Dibs API...")

	// d. Graceful shutdown con timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Close(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Dibs API shut down complete")
}
