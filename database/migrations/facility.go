package migrations

import (
	"klinika.admin/configs/configslog"
	"klinika.admin/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateFacilitiesTable creates the medical_facilities table.
func MigrateFacilitiesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating medical_facilities table...")
	if err := db.AutoMigrate(&models.MedicalFacility{}); err != nil {
		configslog.Log.Error("Failed to migrate medical_facilities table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("medical_facilities table migrated successfully")
	return nil
}
