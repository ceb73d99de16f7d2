package main

import (
	"net/http"
	"os"

	"github.com/Aashish23092/cibil-report-parser/config"
	"github.com/Aashish23092/cibil-report-parser/handler"
	"github.com/Aashish23092/cibil-report-parser/metrics"
	"github.com/Aashish23092/cibil-report-parser/repository"
	"github.com/Aashish23092/cibil-report-parser/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg.LogLevel)

	// Initialize database
	db, err := repository.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer repository.CloseDatabase(db)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize service layer
	engines := service.DefaultOCREngines(cfg.OCR)
	extractor := service.NewPageExtractor(
		service.NewPDFProcessor(),
		engines,
		cfg.OCR.MinTextChars,
		logger,
		m,
	)
	reportRepository := repository.NewReportRepository(db, logger)
	reportService := service.NewReportService(extractor, reportRepository, cfg.ReplaceOnReingest, logger, m)

	// Initialize handler layer
	reportHandler := handler.NewReportHandler(reportService, cfg.MaxUploadBytes, logger)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "CIBIL Report Parser",
			"db":      cfg.DatabasePath,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API routes
	reportHandler.RegisterRoutes(router.Group("/api/v1"))

	logger.WithFields(logrus.Fields{
		"port":        cfg.ServerPort,
		"db":          cfg.DatabasePath,
		"ocr_engines": len(engines),
	}).Info("starting CIBIL report parser")

	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

// corsConfig allows every origin unless an allowlist is configured.
func corsConfig(allowedOrigins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		c.AllowOrigins = allowedOrigins
	} else {
		c.AllowAllOrigins = true
	}
	c.AddAllowMethods("GET", "POST", "DELETE", "OPTIONS")
	c.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	c.AddExposeHeaders("Content-Length")
	return c
}
