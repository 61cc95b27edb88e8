package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// NetworkCounts holds the row count of every table in the clinic network.
type NetworkCounts struct {
	Facilities   int64
	Doctors      int64
	Patients     int64
	Services     int64
	Appointments int64
}

type IDashboardRepository interface {
	CountAll(ctx context.Context) (NetworkCounts, error)
}

type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates the read-only counting repository.
func NewDashboardRepository(db *gorm.DB) IDashboardRepository {
	return &DashboardRepository{db: db}
}

// CountAll counts the rows of each table. It stops at the first error.
func (r *DashboardRepository) CountAll(ctx context.Context) (NetworkCounts, error) {
	var counts NetworkCounts
	var err error
	if counts.Facilities, err = NewBaseRepository[models.MedicalFacility](r.db).CountAll(ctx); err != nil {
		return counts, err
	}
	if counts.Doctors, err = NewBaseRepository[models.Doctor](r.db).CountAll(ctx); err != nil {
		return counts, err
	}
	if counts.Patients, err = NewBaseRepository[models.Patient](r.db).CountAll(ctx); err != nil {
		return counts, err
	}
	if counts.Services, err = NewBaseRepository[models.Service](r.db).CountAll(ctx); err != nil {
		return counts, err
	}
	if counts.Appointments, err = NewBaseRepository[models.Appointment](r.db).CountAll(ctx); err != nil {
		return counts, err
	}
	return counts, nil
}

var _ IDashboardRepository = (*DashboardRepository)(nil)
