package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"population-dashboard-go/internal/chart"
	"population-dashboard-go/internal/dataset"
	"population-dashboard-go/internal/handler"
	"population-dashboard-go/internal/service"
	"population-dashboard-go/internal/store"
	"population-dashboard-go/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the enriched table once; it is read-only from here on
	table, err := loadTable(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	// Initialize services
	dashboardService := service.NewDashboardService(table)

	// Set up Gin router
	router, err := handler.NewRouter(dashboardService, handler.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		ChartFormat:    chart.ParseFormat(cfg.ChartFormat, chart.SVG),
	})
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadTable(cfg *config.Config) (*dataset.Table, error) {
	if cfg.DataSource != config.SourceDatabase {
		return dataset.LoadFile(cfg.DataFile)
	}

	// Connect to database
	s, err := store.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[DATASET] Loaded %d countries from %s database", len(rows), cfg.DatabaseDriver)
	return dataset.FromRows(rows)
}
