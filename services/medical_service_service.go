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

// MedicalServiceError is returned by MedicalServiceService.
type MedicalServiceError string

// Error implements the error interface.
func (e MedicalServiceError) Error() string { return string(e) }

const (
	ErrServiceNotFound        MedicalServiceError = "service not found"
	ErrServiceInvalidInput    MedicalServiceError = "invalid service data"
	ErrServiceInvalidFacility MedicalServiceError = "selected facility does not exist"
	ErrServiceInUse           MedicalServiceError = "service still has appointments"
	ErrServiceCreationFailed  MedicalServiceError = "service could not be created"
	ErrServiceUpdateFailed    MedicalServiceError = "service could not be updated"
	ErrServiceDeletionFailed  MedicalServiceError = "service could not be deleted"
)

// ServiceInput carries submitted form fields. Nil means "not submitted".
type ServiceInput struct {
	Name       *string `form:"name"`
	Price      *string `form:"price"`
	FacilityID *string `form:"facility_id"`
}

func (in ServiceInput) applyTo(s *models.Service) error {
	utils.Sanitize(&in)
	applyString(&s.Name, in.Name)
	if err := applyPrice(&s.Price, in.Price); err != nil {
		return err
	}
	return applyID(&s.FacilityID, in.FacilityID, "FacilityID")
}

// IMedicalServiceService is the interface for priced service operations.
type IMedicalServiceService interface {
	GetAllServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, input ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id uint, input ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, id uint) error
}

// MedicalServiceService implements IMedicalServiceService.
type MedicalServiceService struct {
	repo     repositories.IServiceRepository
	db       *gorm.DB
	validate *validator.Validate
}

// NewMedicalServiceService creates a MedicalServiceService.
func NewMedicalServiceService(db *gorm.DB, validate *validator.Validate) IMedicalServiceService {
	return &MedicalServiceService{
		repo:     repositories.NewServiceRepository(db),
		db:       db,
		validate: validate,
	}
}

// GetAllServices returns every service ordered by id.
func (s *MedicalServiceService) GetAllServices(ctx context.Context) ([]models.Service, error) {
	return s.repo.FindAll(ctx)
}

// GetServiceByID returns one service or ErrServiceNotFound.
func (s *MedicalServiceService) GetServiceByID(ctx context.Context, id uint) (*models.Service, error) {
	service, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

// CreateService inserts a service after checking the facility exists.
func (s *MedicalServiceService) CreateService(ctx context.Context, input ServiceInput) (*models.Service, error) {
	if input.Price == nil {
		return nil, fmt.Errorf("%w: Price is required", ErrServiceInvalidInput)
	}
	var service models.Service
	if err := input.applyTo(&service); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceInvalidInput, err)
	}
	if err := validateEntity(s.validate, &service); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceInvalidInput, err)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkFacility(ctx, tx, service.FacilityID); err != nil {
			return err
		}
		if err := repositories.NewServiceRepositoryTx(tx).Create(ctx, &service); err != nil {
			configslog.Log.Error("CreateService failed", zap.Uint("facilityID", service.FacilityID), zap.Error(err))
			return ErrServiceCreationFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Service created: ID %d, name: %s, price: %s", service.ID, service.Name, service.Price.StringFixed(2))
	return &service, nil
}

// UpdateService overwrites the submitted fields of an existing service.
func (s *MedicalServiceService) UpdateService(ctx context.Context, id uint, input ServiceInput) (*models.Service, error) {
	var updated *models.Service
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewServiceRepositoryTx(tx)

		service, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		if err := input.applyTo(service); err != nil {
			return fmt.Errorf("%w: %v", ErrServiceInvalidInput, err)
		}
		if err := validateEntity(s.validate, service); err != nil {
			return fmt.Errorf("%w: %v", ErrServiceInvalidInput, err)
		}
		if err := s.checkFacility(ctx, tx, service.FacilityID); err != nil {
			return err
		}

		if err := repoTx.Update(ctx, service); err != nil {
			configslog.Log.Error("UpdateService: save failed", zap.Uint("id", id), zap.Error(err))
			return ErrServiceUpdateFailed
		}
		updated = service
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Service updated: ID %d", id)
	return updated, nil
}

// DeleteService removes a service no appointment uses.
func (s *MedicalServiceService) DeleteService(ctx context.Context, id uint) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewServiceRepositoryTx(tx)

		exists, err := repoTx.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrServiceNotFound
		}

		count, err := repoTx.CountAppointments(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w (%d appointments)", ErrServiceInUse, count)
		}

		if err := repoTx.Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrServiceNotFound
			}
			configslog.Log.Error("DeleteService: delete failed", zap.Uint("id", id), zap.Error(err))
			return ErrServiceDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Service deleted: ID %d", id)
	return nil
}

func (s *MedicalServiceService) checkFacility(ctx context.Context, tx *gorm.DB, facilityID uint) error {
	exists, err := repositories.NewFacilityRepositoryTx(tx).Exists(ctx, facilityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrServiceInvalidFacility
	}
	return nil
}

var _ IMedicalServiceService = (*MedicalServiceService)(nil)
