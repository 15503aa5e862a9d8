package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"tubewise/internal/api"
	"tubewise/internal/config"
	"tubewise/internal/service/analyzer"
	"tubewise/internal/service/gemini"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("TUBEWISE_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var vendor analyzer.Vendor
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model,
			time.Duration(cfg.Gemini.UploadPollSeconds)*time.Second)
		if err != nil {
			log.Fatalf("create gemini client: %v", err)
		}
		vendor = client
	} else {
		// Surfaced per request as a configuration error.
		log.Printf("GEMINI_API_KEY is not set; analyze requests will fail")
	}

	service := analyzer.NewService(vendor, cfg.BasicConfig.ScratchDir)
	handlers := api.NewHandler(service,
		cfg.BasicConfig.MaxBodyBytes,
		cfg.BasicConfig.MaxImages,
		time.Duration(cfg.BasicConfig.RequestTimeoutSeconds)*time.Second)

	router := gin.Default()
	handlers.RegisterRoutes(router)
	router.StaticFile("/", filepath.Join(cfg.BasicConfig.StaticDir, "index.html"))
	router.Static("/static", cfg.BasicConfig.StaticDir)

	if err := router.Run(cfg.BasicConfig.ServerAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
