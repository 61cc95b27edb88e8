package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"klinika.admin/configs"
	"klinika.admin/configs/configsdatabase"
	"klinika.admin/configs/configslog"
	"klinika.admin/database"
	"klinika.admin/routes"
	"klinika.admin/utils"
	"klinika.admin/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	configslog.InitLogger(cfg.LogLevel, cfg.AppEnv)
	defer configslog.SyncLogger()

	if _, err := configsdatabase.InitDB(cfg); err != nil {
		configslog.Log.Fatal("Database could not be opened", zap.Error(err))
	}
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	if cfg.DBAutoMigrate {
		if err := database.RunMigrationsInOrder(db); err != nil {
			configslog.Log.Fatal("Auto migration failed", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Clinic Admin",
		Views:        views.NewEngine(),
		ErrorHandler: routes.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Validate: utils.NewValidator(),
		Sessions: configs.SetupSession(),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			configslog.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Server listening on %s", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		configslog.Log.Error("Server stopped with error", zap.Error(err))
	}
	configslog.SLog.Info("Server stopped")
}
