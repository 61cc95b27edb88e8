package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// IDoctorRepository is the data access interface for doctors.
type IDoctorRepository interface {
	FindAll(ctx context.Context) ([]models.Doctor, error)
	FindByID(ctx context.Context, id uint) (*models.Doctor, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, doctor *models.Doctor) error
	Update(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id uint) error
	CountAppointments(ctx context.Context, id uint) (int64, error)
}

// DoctorRepository implements IDoctorRepository.
type DoctorRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Doctor]
}

// NewDoctorRepository creates a DoctorRepository.
func NewDoctorRepository(db *gorm.DB) IDoctorRepository {
	return &DoctorRepository{db: db, base: NewBaseRepository[models.Doctor](db)}
}

// NewDoctorRepositoryTx binds a DoctorRepository to a transaction.
func NewDoctorRepositoryTx(tx *gorm.DB) IDoctorRepository {
	return NewDoctorRepository(tx)
}

// FindAll returns all doctors with their facility loaded.
func (r *DoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	return r.base.FindAll(ctx, "Facility")
}

// FindByID returns the doctor with id or ErrNotFound.
func (r *DoctorRepository) FindByID(ctx context.Context, id uint) (*models.Doctor, error) {
	return r.base.FindByID(ctx, id, "Facility")
}

// Exists reports whether a doctor with id is stored.
func (r *DoctorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.base.Exists(ctx, id)
}

// Create inserts doctor.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.base.Create(ctx, doctor)
}

// Update saves every column of doctor.
func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return r.base.Update(ctx, doctor)
}

// Delete removes the doctor with id. ErrNotFound means no row matched.
func (r *DoctorRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// CountAppointments counts appointments booked with the doctor.
func (r *DoctorRepository) CountAppointments(ctx context.Context, id uint) (int64, error) {
	return NewBaseRepository[models.Appointment](r.db).Count(ctx, "doctor_id = ?", id)
}

var _ IDoctorRepository = (*DoctorRepository)(nil)
