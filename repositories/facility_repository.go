package repositories

import (
	"context"

	"klinika.admin/models"

	"gorm.io/gorm"
)

// FacilityDependents counts the rows that reference a facility.
type FacilityDependents struct {
	Doctors  int64
	Services int64
}

// Total returns the number of referencing rows.
func (d FacilityDependents) Total() int64 { return d.Doctors + d.Services }

// IFacilityRepository is the data access interface for medical facilities.
type IFacilityRepository interface {
	FindAll(ctx context.Context) ([]models.MedicalFacility, error)
	FindByID(ctx context.Context, id uint) (*models.MedicalFacility, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, facility *models.MedicalFacility) error
	Update(ctx context.Context, facility *models.MedicalFacility) error
	Delete(ctx context.Context, id uint) error
	CountDependents(ctx context.Context, id uint) (FacilityDependents, error)
}

// FacilityRepository implements IFacilityRepository.
type FacilityRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.MedicalFacility]
}

// NewFacilityRepository creates a FacilityRepository.
func NewFacilityRepository(db *gorm.DB) IFacilityRepository {
	return &FacilityRepository{db: db, base: NewBaseRepository[models.MedicalFacility](db)}
}

// NewFacilityRepositoryTx binds a FacilityRepository to a transaction.
func NewFacilityRepositoryTx(tx *gorm.DB) IFacilityRepository {
	return NewFacilityRepository(tx)
}

// FindAll returns every facility ordered by id.
func (r *FacilityRepository) FindAll(ctx context.Context) ([]models.MedicalFacility, error) {
	return r.base.FindAll(ctx)
}

// FindByID returns the facility with id or ErrNotFound.
func (r *FacilityRepository) FindByID(ctx context.Context, id uint) (*models.MedicalFacility, error) {
	return r.base.FindByID(ctx, id)
}

// Exists reports whether a facility with id is stored.
func (r *FacilityRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.base.Exists(ctx, id)
}

// Create inserts facility.
func (r *FacilityRepository) Create(ctx context.Context, facility *models.MedicalFacility) error {
	return r.base.Create(ctx, facility)
}

// Update saves every column of facility.
func (r *FacilityRepository) Update(ctx context.Context, facility *models.MedicalFacility) error {
	return r.base.Update(ctx, facility)
}

// Delete removes the facility with id. ErrNotFound means no row matched.
func (r *FacilityRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// CountDependents counts doctors and services still attached to the facility.
func (r *FacilityRepository) CountDependents(ctx context.Context, id uint) (FacilityDependents, error) {
	var deps FacilityDependents
	var err error
	if deps.Doctors, err = NewBaseRepository[models.Doctor](r.db).Count(ctx, "facility_id = ?", id); err != nil {
		return deps, err
	}
	if deps.Services, err = NewBaseRepository[models.Service](r.db).Count(ctx, "facility_id = ?", id); err != nil {
		return deps, err
	}
	return deps, nil
}

var _ IFacilityRepository = (*FacilityRepository)(nil)
