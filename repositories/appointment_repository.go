package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// IAppointmentRepository is the data access interface for appointments.
type IAppointmentRepository interface {
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
}

// AppointmentRepository implements IAppointmentRepository.
type AppointmentRepository struct {
	base *BaseRepository[models.Appointment]
}

// NewAppointmentRepository creates an AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{base: NewBaseRepository[models.Appointment](db)}
}

// NewAppointmentRepositoryTx binds an AppointmentRepository to a transaction.
func NewAppointmentRepositoryTx(tx *gorm.DB) IAppointmentRepository {
	return NewAppointmentRepository(tx)
}

// FindAll returns all appointments with patient, doctor and service loaded.
func (r *AppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return r.base.FindAll(ctx, "Patient", "Doctor", "Service")
}

// FindByID returns the appointment with id or ErrNotFound.
func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.base.FindByID(ctx, id, "Patient", "Doctor", "Service")
}

// Create inserts appointment.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.base.Create(ctx, appointment)
}

// Update saves every column of appointment.
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.base.Update(ctx, appointment)
}

// Delete removes the appointment with id. ErrNotFound means no row matched.
func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
