// StudyHive backend: course materials, past questions, community notes,
// quizzes and material requests for university students.
//
// @title StudyHive API
// @version 1.0
// @description Student academic resource sharing platform.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"flag"
	"log"

	"studyhive_backend/internal/app"
	"studyhive_backend/internal/config"
	"studyhive_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "./configs", "directory containing config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if err := app.Run(cfg, *configDir+"/config.yaml"); err != nil {
		logger.Log.Fatal("Application failed", zap.Error(err))
	}
}
