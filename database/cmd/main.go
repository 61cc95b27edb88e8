package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"klinika.admin/configs"
	"klinika.admin/configs/configsdatabase"
	"klinika.admin/configs/configslog"
	"klinika.admin/database"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run the table migrations")
	seedFlag := flag.Bool("seed", false, "Seed a demo clinic network into an empty store")
	flag.Parse()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	configslog.InitLogger(cfg.LogLevel, cfg.AppEnv)
	defer configslog.SyncLogger()

	db, err := configsdatabase.InitDB(cfg)
	if err != nil {
		configslog.SLog.Fatalf("database could not be opened: %v", err)
	}
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Running database initialisation...")
	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		if errors.Is(err, database.ErrNothingToDo) {
			flag.Usage()
			return
		}
		configslog.SLog.Errorf("database initialisation failed: %v", err)
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
	configslog.SLog.Info("Database initialisation finished.")
}
