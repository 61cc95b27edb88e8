package database

import (
	"errors"

	"klinika.admin/configs/configslog"
	"klinika.admin/database/migrations"
	"klinika.admin/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNothingToDo is returned when neither migrate nor seed was requested.
var ErrNothingToDo = errors.New("neither migrate nor seed requested")

// Initialize runs migrations and/or seeders inside one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("No migrate or seed flag given, nothing to do.")
		return ErrNothingToDo
	}

	configslog.SLog.Info("Database initialisation starting...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not given, skipping migrations.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not given, skipping seeders.")
		}
		return nil
	})
	if err != nil {
		configslog.SLog.Warn("Database initialisation rolled back.")
		return err
	}

	configslog.SLog.Info("Database initialisation completed")
	return nil
}

// RunMigrationsInOrder creates the tables parents first so foreign keys
// resolve.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"facility", migrations.MigrateFacilitiesTable},
		{"doctor & service", migrations.MigrateDoctorsAndServicesTables},
		{"patient", migrations.MigratePatientsTable},
		{"appointment", migrations.MigrateAppointmentsTable},
	}

	for _, step := range steps {
		configslog.SLog.Infof(" -> Running %s migrations...", step.name)
		if err := step.run(db); err != nil {
			return err
		}
	}

	configslog.SLog.Info("All migrations ran successfully.")
	return nil
}

// CheckAndRunSeeders loads the demo network into an empty database.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Running demo network seeder...")
	if err := seeders.SeedDemoNetwork(db); err != nil {
		return err
	}
	configslog.SLog.Info("All seeders checked/ran successfully.")
	return nil
}
