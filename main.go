package main

import (
	"finance-tracker/api"
	"finance-tracker/config"
	"finance-tracker/db"
	_ "finance-tracker/docs"
	"finance-tracker/logging"
)

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: token-authenticated transaction CRUD and reports.
// @BasePath /api
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info")
		logging.Logger.Fatalf("failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogLevel)
	logging.Logger.Info("application starting...")

	var storage db.Store
	switch cfg.DBDriver {
	case "sqlite":
		storage, err = db.NewSQLiteStorage(cfg.SQLitePath)
	default:
		storage, err = db.NewPostgresStorage(cfg.PostgresURL)
	}
	if err != nil {
		logging.Logger.Fatalf("failed to initialize storage: %v", err)
	}
	defer storage.Close()

	handler := api.NewHandler(storage, cfg.JWTSecret)
	r := api.SetupRouter(handler)

	logging.Logger.Infof("listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("server stopped: %v", err)
	}
}
