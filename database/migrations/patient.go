package migrations

import (
	"errors"

	"klinika.admin/configs/configslog"
	"klinika.admin/models"

	"gorm.io/gorm"
)

// MigratePatientsTable creates the patients table.
func MigratePatientsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating patients table...")

	if err := db.AutoMigrate(&models.Patient{}); err != nil {
		errMsg := "patients table could not be migrated: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("patients table migrated.")
	return nil
}
