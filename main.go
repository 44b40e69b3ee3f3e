package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/pos-till/config"
	"github.com/yeremiapane/pos-till/database"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/router"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
}

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.App.LogLevel)

	// Set gin mode
	if cfg.App.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	till, handler, err := setupApp(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start till: %v", err)
	}
	defer till.Shutdown()

	if cfg.Backend.BaseURL != "" {
		utils.InfoLogger.Printf("Fallback POS API: %s", cfg.Backend.BaseURL)
	}
	if stage, err := till.Sessions.Stage(); err == nil {
		utils.InfoLogger.Printf("Till stage: %s", stage)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: handler,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down till...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Server shutdown: %v", err)
	}
}

// setupApp membuka local store lalu merangkai till dan router
func setupApp(cfg *config.Config) (*services.Till, *gin.Engine, error) {
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	till := services.NewTill(cfg, database.NewSettingsStore(db), kds.NewHub())
	return till, router.SetupRouter(till, cfg), nil
}
