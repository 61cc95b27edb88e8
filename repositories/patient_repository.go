package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// IPatientRepository is the data access interface for patients.
type IPatientRepository interface {
	FindAll(ctx context.Context) ([]models.Patient, error)
	FindByID(ctx context.Context, id uint) (*models.Patient, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uint) error
	CountAppointments(ctx context.Context, id uint) (int64, error)
}

// PatientRepository implements IPatientRepository.
type PatientRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Patient]
}

// NewPatientRepository creates a PatientRepository.
func NewPatientRepository(db *gorm.DB) IPatientRepository {
	return &PatientRepository{db: db, base: NewBaseRepository[models.Patient](db)}
}

// NewPatientRepositoryTx binds a PatientRepository to a transaction.
func NewPatientRepositoryTx(tx *gorm.DB) IPatientRepository {
	return NewPatientRepository(tx)
}

// FindAll returns every patient ordered by id.
func (r *PatientRepository) FindAll(ctx context.Context) ([]models.Patient, error) {
	return r.base.FindAll(ctx)
}

// FindByID returns the patient with id or ErrNotFound.
func (r *PatientRepository) FindByID(ctx context.Context, id uint) (*models.Patient, error) {
	return r.base.FindByID(ctx, id)
}

// Exists reports whether a patient with id is stored.
func (r *PatientRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.base.Exists(ctx, id)
}

// Create inserts patient.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.base.Create(ctx, patient)
}

// Update saves every column of patient.
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return r.base.Update(ctx, patient)
}

// Delete removes the patient with id. ErrNotFound means no row matched.
func (r *PatientRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// CountAppointments counts appointments booked for the patient.
func (r *PatientRepository) CountAppointments(ctx context.Context, id uint) (int64, error) {
	return NewBaseRepository[models.Appointment](r.db).Count(ctx, "patient_id = ?", id)
}

var _ IPatientRepository = (*PatientRepository)(nil)
