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

// PatientServiceError is returned by PatientService.
type PatientServiceError string

// Error implements the error interface.
func (e PatientServiceError) Error() string { return string(e) }

const (
	ErrPatientNotFound       PatientServiceError = "patient not found"
	ErrPatientInvalidInput   PatientServiceError = "invalid patient data"
	ErrPatientInUse          PatientServiceError = "patient still has appointments"
	ErrPatientCreationFailed PatientServiceError = "patient could not be created"
	ErrPatientUpdateFailed   PatientServiceError = "patient could not be updated"
	ErrPatientDeletionFailed PatientServiceError = "patient could not be deleted"
)

// PatientInput carries submitted form fields. Nil means "not submitted".
type PatientInput struct {
	Name      *string `form:"name"`
	BirthDate *string `form:"birth_date"`
	Phone     *string `form:"phone"`
}

func (in PatientInput) applyTo(p *models.Patient) {
	utils.Sanitize(&in)
	applyString(&p.Name, in.Name)
	applyString(&p.BirthDate, in.BirthDate)
	applyString(&p.Phone, in.Phone)
}

// IPatientService is the interface for patient operations.
type IPatientService interface {
	GetAllPatients(ctx context.Context) ([]models.Patient, error)
	GetPatientByID(ctx context.Context, id uint) (*models.Patient, error)
	CreatePatient(ctx context.Context, input PatientInput) (*models.Patient, error)
	UpdatePatient(ctx context.Context, id uint, input PatientInput) (*models.Patient, error)
	DeletePatient(ctx context.Context, id uint) error
}

// PatientService implements IPatientService.
type PatientService struct {
	repo     repositories.IPatientRepository
	db       *gorm.DB
	validate *validator.Validate
}

// NewPatientService creates a PatientService.
func NewPatientService(db *gorm.DB, validate *validator.Validate) IPatientService {
	return &PatientService{
		repo:     repositories.NewPatientRepository(db),
		db:       db,
		validate: validate,
	}
}

// GetAllPatients returns every patient ordered by id.
func (s *PatientService) GetAllPatients(ctx context.Context) ([]models.Patient, error) {
	return s.repo.FindAll(ctx)
}

// GetPatientByID returns one patient or ErrPatientNotFound.
func (s *PatientService) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// CreatePatient inserts a patient built from the submitted fields.
func (s *PatientService) CreatePatient(ctx context.Context, input PatientInput) (*models.Patient, error) {
	var patient models.Patient
	input.applyTo(&patient)
	if err := validateEntity(s.validate, &patient); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatientInvalidInput, err)
	}

	if err := s.repo.Create(ctx, &patient); err != nil {
		configslog.Log.Error("CreatePatient failed", zap.Error(err))
		return nil, ErrPatientCreationFailed
	}
	configslog.SLog.Infof("Patient created: ID %d", patient.ID)
	return &patient, nil
}

// UpdatePatient overwrites the submitted fields of an existing patient.
func (s *PatientService) UpdatePatient(ctx context.Context, id uint, input PatientInput) (*models.Patient, error) {
	var updated *models.Patient
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewPatientRepositoryTx(tx)

		patient, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		input.applyTo(patient)
		if err := validateEntity(s.validate, patient); err != nil {
			return fmt.Errorf("%w: %v", ErrPatientInvalidInput, err)
		}

		if err := repoTx.Update(ctx, patient); err != nil {
			configslog.Log.Error("UpdatePatient: save failed", zap.Uint("id", id), zap.Error(err))
			return ErrPatientUpdateFailed
		}
		updated = patient
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Patient updated: ID %d", id)
	return updated, nil
}

// DeletePatient removes a patient that has no appointments.
func (s *PatientService) DeletePatient(ctx context.Context, id uint) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewPatientRepositoryTx(tx)

		exists, err := repoTx.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPatientNotFound
		}

		count, err := repoTx.CountAppointments(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w (%d appointments)", ErrPatientInUse, count)
		}

		if err := repoTx.Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrPatientNotFound
			}
			configslog.Log.Error("DeletePatient: delete failed", zap.Uint("id", id), zap.Error(err))
			return ErrPatientDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	configslog.SLog.Infof("Patient deleted: ID %d", id)
	return nil
}

var _ IPatientService = (*PatientService)(nil)
