package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buzzroom/internal/config"
	"buzzroom/internal/service"
	"buzzroom/internal/store"
	"buzzroom/internal/transport/rest"
	"buzzroom/internal/transport/ws"
)

func main() {
	log.Println("buzzroom starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	log.Printf("grace period: %s", cfg.GracePeriod)

	gameStore := store.NewMemoryStore()
	authSvc := service.NewAuthService(cfg.JWTSecret)
	grace := service.NewGraceSupervisor(cfg.GracePeriod)
	gameSvc := service.NewGameService(gameStore, grace, authSvc)

	hub := ws.NewHub()
	gameSvc.SetBroadcaster(hub)
	wsHandler := ws.NewHandler(hub, gameSvc, authSvc)

	router := rest.NewRouter(&rest.Container{
		GameStore:      gameStore,
		WSHandler:      wsHandler,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.Port)
		log.Println("endpoints:")
		log.Println("  GET /health")
		log.Println("  GET /v1/rooms/{roomId}")
		log.Println("  WS  /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exited")
}
