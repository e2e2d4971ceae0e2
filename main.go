package main

import (
	"context"
	"log"

	"iot-device-api/confs"
	"iot-device-api/db"
	"iot-device-api/server"
)

func main() {
	// load config
	err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx := context.Background()

	// connect to MongoDB
	database, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer func() {
		if err := database.Close(ctx); err != nil {
			log.Printf("Error closing DB connection: %v", err)
		}
	}()

	// run server
	serverDb := server.NewServer(database)
	serverDb.Start(ctx)
}
