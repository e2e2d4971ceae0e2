package server

import (
	"context"
	"strconv"
	"time"

	"iot-device-api/confs"
	"iot-device-api/db"
	"iot-device-api/handlers"
	httpHandler "iot-device-api/handlers/http"
	"iot-device-api/repositories"
	"iot-device-api/services"
	"iot-device-api/usecases"
	"iot-device-api/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start(ctx context.Context) {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	deviceRepo := repositories.NewDeviceMongoRepository(s.db)
	historyRepo := repositories.NewDeviceDataHistoryMongoRepository(s.db)

	// Initialize use cases
	deviceUseCase := usecases.NewDeviceUseCase(deviceRepo)
	historyUseCase := usecases.NewHistoryUseCase(historyRepo)

	// Initialize the ingest pipeline for websocket readings
	flushInterval := 30 * time.Second
	if v, err := strconv.Atoi(confs.Getenv("INGEST_FLUSH_INTERVAL", "")); err == nil && v > 0 {
		flushInterval = time.Duration(v) * time.Second
	}
	ingestor := services.NewIngestor(historyRepo, deviceRepo, flushInterval)
	ingestor.Start(ctx)

	// Initialize handlers
	deviceHandler := httpHandler.NewDeviceHandler(deviceUseCase)
	historyHandler := httpHandler.NewHistoryHandler(historyUseCase)

	// WebSocket manager and handler
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager, deviceUseCase, ingestor)
	ingestHandler := handlers.NewIngestHandler(ingestor)

	// Setup API routes
	api := s.app.Group("/api")
	{
		// Device routes
		devices := api.Group("/devices")
		{
			devices.POST("", deviceHandler.CreateDevice)
			devices.GET("", deviceHandler.GetAllDevices)
			devices.GET("/connected", wsHandler.GetConnectedDevices)
			devices.GET("/:id", deviceHandler.GetDevice)
			devices.PUT("/:id", deviceHandler.UpdateDevice)
			devices.PATCH("/:id/status", deviceHandler.UpdateDeviceStatus)
			devices.PATCH("/:id/data", deviceHandler.UpdateDeviceData)
			devices.DELETE("/:id", deviceHandler.DeleteDevice)
			devices.POST("/:id/power", wsHandler.SendPowerCommand)

			// History routes (append-only; no update or delete)
			devices.POST("/:id/history", historyHandler.AppendReading)
			devices.GET("/:id/history", historyHandler.QueryReadings)
			devices.GET("/:id/history/latest", historyHandler.LatestReading)
		}

		// Ingest pipeline management endpoints
		ingest := api.Group("/ingest")
		{
			ingest.POST("/flush", ingestHandler.Flush)
			ingest.GET("/stats", ingestHandler.Stats)
		}
	}

	s.app.GET("/ws", wsHandler.HandleDeviceWS)
	s.app.GET("/ws/feed", wsHandler.HandleFeedWS)

	addr := "0.0.0.0:" + confs.Getenv("PORT", "3000")
	if err := s.app.Run(addr); err != nil {
		panic(err)
	}
}
