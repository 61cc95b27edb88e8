package seeders

import (
	"fmt"

	"klinika.admin/configs/configslog"
	"klinika.admin/models"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoFacility struct {
	facility models.MedicalFacility
	doctors  []models.Doctor
	services []models.Service
}

func demoNetwork() []demoFacility {
	return []demoFacility{
		{
			facility: models.MedicalFacility{Name: "Central Clinic", Address: "1 Main Street", Phone: "555-0100"},
			doctors: []models.Doctor{
				{Name: "Dr. Alice Moreau", Specialization: "General Practice"},
				{Name: "Dr. Omar Haddad", Specialization: "Cardiology"},
			},
			services: []models.Service{
				{Name: "General Consultation", Price: decimal.RequireFromString("50.00")},
				{Name: "ECG", Price: decimal.RequireFromString("85.50")},
			},
		},
		{
			facility: models.MedicalFacility{Name: "Riverside Health Centre", Address: "42 River Road", Phone: "555-0142"},
			doctors: []models.Doctor{
				{Name: "Dr. Mei Tanaka", Specialization: "Pediatrics"},
			},
			services: []models.Service{
				{Name: "Child Checkup", Price: decimal.RequireFromString("40.00")},
			},
		},
	}
}

// SeedDemoNetwork fills an empty store with a small clinic network. It does
// nothing when any facility already exists.
func SeedDemoNetwork(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MedicalFacility{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting facilities: %w", err)
	}
	if count > 0 {
		configslog.SLog.Infof("Store already has %d facilities, demo seed skipped.", count)
		return nil
	}

	configslog.SLog.Info("Seeding demo clinic network...")

	var errs error
	var firstDoctor *models.Doctor
	var firstService *models.Service
	for _, entry := range demoNetwork() {
		facility := entry.facility
		if err := db.Create(&facility).Error; err != nil {
			configslog.Log.Error("Demo facility could not be created", zap.String("name", facility.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("facility %q: %w", facility.Name, err))
			continue
		}

		for _, doctor := range entry.doctors {
			doctor.FacilityID = facility.ID
			if err := db.Create(&doctor).Error; err != nil {
				errs = multierr.Append(errs, fmt.Errorf("doctor %q: %w", doctor.Name, err))
				continue
			}
			if firstDoctor == nil {
				d := doctor
				firstDoctor = &d
			}
		}
		for _, service := range entry.services {
			service.FacilityID = facility.ID
			if err := db.Create(&service).Error; err != nil {
				errs = multierr.Append(errs, fmt.Errorf("service %q: %w", service.Name, err))
				continue
			}
			if firstService == nil {
				s := service
				firstService = &s
			}
		}
	}

	patients := []models.Patient{
		{Name: "John Carter", BirthDate: "1984-03-12", Phone: "555-0201"},
		{Name: "Sara Lind", BirthDate: "1992-11-05", Phone: "555-0202"},
	}
	for i := range patients {
		if err := db.Create(&patients[i]).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("patient %q: %w", patients[i].Name, err))
		}
	}

	if firstDoctor != nil && firstService != nil && patients[0].ID != 0 {
		appointment := models.Appointment{
			PatientID:       patients[0].ID,
			DoctorID:        firstDoctor.ID,
			ServiceID:       firstService.ID,
			AppointmentDate: "2024-05-20 09:30",
		}
		if err := db.Create(&appointment).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("appointment: %w", err))
		}
	}

	if errs != nil {
		configslog.Log.Error("Demo seed finished with errors", zap.Int("errors", len(multierr.Errors(errs))), zap.Error(errs))
		return errs
	}
	configslog.SLog.Info("Demo clinic network seeded.")
	return nil
}
