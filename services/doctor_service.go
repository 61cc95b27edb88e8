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

// DoctorServiceError is returned by DoctorService.
type DoctorServiceError string

// Error implements the error interface.
func (e DoctorServiceError) Error() string { return string(e) }

const (
	ErrDoctorNotFound        DoctorServiceError = "doctor not found"
	ErrDoctorInvalidInput    DoctorServiceError = "invalid doctor data"
	ErrDoctorInvalidFacility DoctorServiceError = "selected facility does not exist"
	ErrDoctorInUse           DoctorServiceError = "doctor still has appointments"
	ErrDoctorCreationFailed  DoctorServiceError = "doctor could not be created"
	ErrDoctorUpdateFailed    DoctorServiceError = "doctor could not be updated"
	ErrDoctorDeletionFailed  DoctorServiceError = "doctor could not be deleted"
)

// DoctorInput carries submitted form fields. Nil means "not submitted".
type DoctorInput struct {
	Name           *string `form:"name"`
	Specialization *string `form:"specialization"`
	FacilityID     *string `form:"facility_id"`
}

func (in DoctorInput) applyTo(d *models.Doctor) error {
	utils.Sanitize(&in)
	applyString(&d.Name, in.Name)
	applyString(&d.Specialization, in.Specialization)
	return applyID(&d.FacilityID, in.FacilityID, "FacilityID")
}

// IDoctorService is the interface for doctor operations.
type IDoctorService interface {
	GetAllDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error)
	CreateDoctor(ctx context.Context, input DoctorInput) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, id uint, input DoctorInput) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, id uint) error
}

// DoctorService implements IDoctorService.
type DoctorService struct {
	repo     repositories.IDoctorRepository
	db       *gorm.DB
	validate *validator.Validate
}

// NewDoctorService creates a DoctorService.
func NewDoctorService(db *gorm.DB, validate *validator.Validate) IDoctorService {
	return &DoctorService{
		repo:     repositories.NewDoctorRepository(db),
		db:       db,
		validate: validate,
	}
}

// GetAllDoctors returns every doctor with the facility loaded.
func (s *DoctorService) GetAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.repo.FindAll(ctx)
}

// GetDoctorByID returns one doctor or ErrDoctorNotFound.
func (s *DoctorService) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// CreateDoctor inserts a doctor after checking the facility exists.
func (s *DoctorService) CreateDoctor(ctx context.Context, input DoctorInput) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := input.applyTo(&doctor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDoctorInvalidInput, err)
	}
	if err := validateEntity(s.validate, &doctor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDoctorInvalidInput, err)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkFacility(ctx, tx, doctor.FacilityID); err != nil {
			return err
		}
		if err := repositories.NewDoctorRepositoryTx(tx).Create(ctx, &doctor); err != nil {
			configslog.Log.Error("CreateDoctor failed", zap.Uint("facilityID", doctor.FacilityID), zap.Error(err))
			return ErrDoctorCreationFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Doctor created: ID %d, name: %s", doctor.ID, doctor.Name)
	return &doctor, nil
}

// UpdateDoctor overwrites the submitted fields of an existing doctor.
func (s *DoctorService) UpdateDoctor(ctx context.Context, id uint, input DoctorInput) (*models.Doctor, error) {
	var updated *models.Doctor
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewDoctorRepositoryTx(tx)

		doctor, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrDoctorNotFound
			}
			return err
		}

		if err := input.applyTo(doctor); err != nil {
			return fmt.Errorf("%w: %v", ErrDoctorInvalidInput, err)
		}
		if err := validateEntity(s.validate, doctor); err != nil {
			return fmt.Errorf("%w: %v", ErrDoctorInvalidInput, err)
		}
		if err := s.checkFacility(ctx, tx, doctor.FacilityID); err != nil {
			return err
		}

		if err := repoTx.Update(ctx, doctor); err != nil {
			configslog.Log.Error("UpdateDoctor: save failed", zap.Uint("id", id), zap.Error(err))
			return ErrDoctorUpdateFailed
		}
		updated = doctor
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Doctor updated: ID %d", id)
	return updated, nil
}

// DeleteDoctor removes a doctor that has no appointments.
func (s *DoctorService) DeleteDoctor(ctx context.Context, id uint) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewDoctorRepositoryTx(tx)

		exists, err := repoTx.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrDoctorNotFound
		}

		count, err := repoTx.CountAppointments(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w (%d appointments)", ErrDoctorInUse, count)
		}

		if err := repoTx.Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrDoctorNotFound
			}
			configslog.Log.Error("DeleteDoctor: delete failed", zap.Uint("id", id), zap.Error(err))
			return ErrDoctorDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Doctor deleted: ID %d", id)
	return nil
}

func (s *DoctorService) checkFacility(ctx context.Context, tx *gorm.DB, facilityID uint) error {
	exists, err := repositories.NewFacilityRepositoryTx(tx).Exists(ctx, facilityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrDoctorInvalidFacility
	}
	return nil
}

var _ IDoctorService = (*DoctorService)(nil)
