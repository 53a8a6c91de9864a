package main

import (
	"context"
	"log"

	"github.com/daohd2003/FRECS-sub006/internal/bootstrap"
	"github.com/daohd2003/FRECS-sub006/internal/config"
	"github.com/daohd2003/FRECS-sub006/internal/server"
	"github.com/daohd2003/FRECS-sub006/internal/tracer"
	"github.com/daohd2003/FRECS-sub006/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	// The container also starts the notification consumer and the
	// websocket hub as background workers.
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Initialize and Run Server
	srv := server.New(cfg, container, container.Logger)
	log.Fatal(srv.Run())
}
