package services

import (
	"context"
	"errors"
	"fmt"

	"klinika.admin/configs/configslog"
	"klinika.admin/models"
	"klinika.admin/repositories"
	"klinika.admin/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FacilityServiceError is returned by FacilityService.
type FacilityServiceError string

// Error implements the error interface.
func (e FacilityServiceError) Error() string { return string(e) }

const (
	ErrFacilityNotFound       FacilityServiceError = "medical facility not found"
	ErrFacilityInvalidInput   FacilityServiceError = "invalid facility data"
	ErrFacilityInUse          FacilityServiceError = "facility still has doctors or services"
	ErrFacilityCreationFailed FacilityServiceError = "facility could not be created"
	ErrFacilityUpdateFailed   FacilityServiceError = "facility could not be updated"
	ErrFacilityDeletionFailed FacilityServiceError = "facility could not be deleted"
)

// FacilityInput carries submitted form fields. Nil means "not submitted".
type FacilityInput struct {
	Name    *string `form:"name"`
	Address *string `form:"address"`
	Phone   *string `form:"phone"`
}

func (in FacilityInput) applyTo(f *models.MedicalFacility) {
	utils.Sanitize(&in)
	applyString(&f.Name, in.Name)
	applyString(&f.Address, in.Address)
	applyString(&f.Phone, in.Phone)
}

// IFacilityService is the interface for facility operations.
type IFacilityService interface {
	GetAllFacilities(ctx context.Context) ([]models.MedicalFacility, error)
	GetFacilityByID(ctx context.Context, id uint) (*models.MedicalFacility, error)
	CreateFacility(ctx context.Context, input FacilityInput) (*models.MedicalFacility, error)
	UpdateFacility(ctx context.Context, id uint, input FacilityInput) (*models.MedicalFacility, error)
	DeleteFacility(ctx context.Context, id uint) error
}

// FacilityService implements IFacilityService.
type FacilityService struct {
	repo     repositories.IFacilityRepository
	db       *gorm.DB
	validate *validator.Validate
}

// NewFacilityService creates a FacilityService.
func NewFacilityService(db *gorm.DB, validate *validator.Validate) IFacilityService {
	return &FacilityService{
		repo:     repositories.NewFacilityRepository(db),
		db:       db,
		validate: validate,
	}
}

// GetAllFacilities returns every facility ordered by id.
func (s *FacilityService) GetAllFacilities(ctx context.Context) ([]models.MedicalFacility, error) {
	return s.repo.FindAll(ctx)
}

// GetFacilityByID returns one facility or ErrFacilityNotFound.
func (s *FacilityService) GetFacilityByID(ctx context.Context, id uint) (*models.MedicalFacility, error) {
	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return facility, nil
}

// CreateFacility inserts a facility built from the submitted fields.
func (s *FacilityService) CreateFacility(ctx context.Context, input FacilityInput) (*models.MedicalFacility, error) {
	var facility models.MedicalFacility
	input.applyTo(&facility)
	if err := validateEntity(s.validate, &facility); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFacilityInvalidInput, err)
	}

	if err := s.repo.Create(ctx, &facility); err != nil {
		configslog.Log.Error("CreateFacility failed", zap.Error(err))
		return nil, ErrFacilityCreationFailed
	}
	configslog.SLog.Infof("Facility created: ID %d, name: %s", facility.ID, facility.Name)
	return &facility, nil
}

// UpdateFacility overwrites the submitted fields of an existing facility.
func (s *FacilityService) UpdateFacility(ctx context.Context, id uint, input FacilityInput) (*models.MedicalFacility, error) {
	var updated *models.MedicalFacility
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFacilityRepositoryTx(tx)

		facility, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFacilityNotFound
			}
			return err
		}

		input.applyTo(facility)
		if err := validateEntity(s.validate, facility); err != nil {
			return fmt.Errorf("%w: %v", ErrFacilityInvalidInput, err)
		}

		if err := repoTx.Update(ctx, facility); err != nil {
			configslog.Log.Error("UpdateFacility: save failed", zap.Uint("id", id), zap.Error(err))
			return ErrFacilityUpdateFailed
		}
		updated = facility
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Facility updated: ID %d", id)
	return updated, nil
}

// DeleteFacility removes a facility that no doctor or service references.
func (s *FacilityService) DeleteFacility(ctx context.Context, id uint) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFacilityRepositoryTx(tx)

		exists, err := repoTx.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrFacilityNotFound
		}

		deps, err := repoTx.CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if deps.Total() > 0 {
			return fmt.Errorf("%w (%d doctors, %d services)", ErrFacilityInUse, deps.Doctors, deps.Services)
		}

		if err := repoTx.Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFacilityNotFound
			}
			configslog.Log.Error("DeleteFacility: delete failed", zap.Uint("id", id), zap.Error(err))
			return ErrFacilityDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Facility deleted: ID %d", id)
	return nil
}

var _ IFacilityService = (*FacilityService)(nil)
