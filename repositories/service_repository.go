package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// IServiceRepository is the data access interface for medical services.
type IServiceRepository interface {
	FindAll(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint) error
	CountAppointments(ctx context.Context, id uint) (int64, error)
}

// ServiceRepository implements IServiceRepository.
type ServiceRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Service]
}

// NewServiceRepository creates a ServiceRepository.
func NewServiceRepository(db *gorm.DB) IServiceRepository {
	return &ServiceRepository{db: db, base: NewBaseRepository[models.Service](db)}
}

// NewServiceRepositoryTx binds a ServiceRepository to a transaction.
func NewServiceRepositoryTx(tx *gorm.DB) IServiceRepository {
	return NewServiceRepository(tx)
}

// FindAll returns all services with their facility loaded.
func (r *ServiceRepository) FindAll(ctx context.Context) ([]models.Service, error) {
	return r.base.FindAll(ctx, "Facility")
}

// FindByID returns the service with id or ErrNotFound.
func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	return r.base.FindByID(ctx, id, "Facility")
}

// Exists reports whether a service with id is stored.
func (r *ServiceRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.base.Exists(ctx, id)
}

// Create inserts service.
func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	return r.base.Create(ctx, service)
}

// Update saves every column of service.
func (r *ServiceRepository) Update(ctx context.Context, service *models.Service) error {
	return r.base.Update(ctx, service)
}

// Delete removes the service with id. ErrNotFound means no row matched.
func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// CountAppointments counts appointments that use the service.
func (r *ServiceRepository) CountAppointments(ctx context.Context, id uint) (int64, error) {
	return NewBaseRepository[models.Appointment](r.db).Count(ctx, "service_id = ?", id)
}

var _ IServiceRepository = (*ServiceRepository)(nil)
