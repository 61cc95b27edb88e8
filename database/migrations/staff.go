package migrations

import (
	"klinika.admin/configs/configslog"
	"klinika.admin/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateDoctorsAndServicesTables creates the tables that hang off a facility.
// Facilities must exist first.
func MigrateDoctorsAndServicesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating doctors & services tables...")
	if err := db.AutoMigrate(&models.Doctor{}, &models.Service{}); err != nil {
		configslog.Log.Error("Failed to migrate doctors & services tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("doctors & services tables migrated successfully")
	return nil
}
