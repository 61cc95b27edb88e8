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

// AppointmentServiceError is returned by AppointmentService.
type AppointmentServiceError string

// Error implements the error interface.
func (e AppointmentServiceError) Error() string { return string(e) }

const (
	ErrAppointmentNotFound         AppointmentServiceError = "appointment not found"
	ErrAppointmentInvalidInput     AppointmentServiceError = "invalid appointment data"
	ErrAppointmentInvalidReference AppointmentServiceError = "selected patient, doctor or service does not exist"
	ErrAppointmentCreationFailed   AppointmentServiceError = "appointment could not be created"
	ErrAppointmentUpdateFailed     AppointmentServiceError = "appointment could not be updated"
	ErrAppointmentDeletionFailed   AppointmentServiceError = "appointment could not be deleted"
)

// AppointmentInput carries submitted form fields. Nil means "not submitted".
type AppointmentInput struct {
	PatientID       *string `form:"patient_id"`
	DoctorID        *string `form:"doctor_id"`
	ServiceID       *string `form:"service_id"`
	AppointmentDate *string `form:"appointment_date" sanitize:"-"`
}

func (in AppointmentInput) applyTo(a *models.Appointment) error {
	utils.Sanitize(&in)
	if err := applyID(&a.PatientID, in.PatientID, "PatientID"); err != nil {
		return err
	}
	if err := applyID(&a.DoctorID, in.DoctorID, "DoctorID"); err != nil {
		return err
	}
	if err := applyID(&a.ServiceID, in.ServiceID, "ServiceID"); err != nil {
		return err
	}
	applyString(&a.AppointmentDate, in.AppointmentDate)
	return nil
}

// IAppointmentService is the interface for appointment operations.
type IAppointmentService interface {
	GetAllAppointments(ctx context.Context) ([]models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, input AppointmentInput) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id uint, input AppointmentInput) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id uint) error
}

// AppointmentService implements IAppointmentService.
type AppointmentService struct {
	repo     repositories.IAppointmentRepository
	db       *gorm.DB
	validate *validator.Validate
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(db *gorm.DB, validate *validator.Validate) IAppointmentService {
	return &AppointmentService{
		repo:     repositories.NewAppointmentRepository(db),
		db:       db,
		validate: validate,
	}
}

// GetAllAppointments returns every appointment ordered by id.
func (s *AppointmentService) GetAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return s.repo.FindAll(ctx)
}

// GetAppointmentByID returns one appointment or ErrAppointmentNotFound.
func (s *AppointmentService) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// CreateAppointment books a visit after checking all three references.
func (s *AppointmentService) CreateAppointment(ctx context.Context, input AppointmentInput) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := input.applyTo(&appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAppointmentInvalidInput, err)
	}
	if err := validateEntity(s.validate, &appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAppointmentInvalidInput, err)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkAppointmentReferences(ctx, tx, &appointment); err != nil {
			return err
		}
		if err := repositories.NewAppointmentRepositoryTx(tx).Create(ctx, &appointment); err != nil {
			configslog.Log.Error("CreateAppointment failed",
				zap.Uint("patientID", appointment.PatientID),
				zap.Uint("doctorID", appointment.DoctorID),
				zap.Uint("serviceID", appointment.ServiceID),
				zap.Error(err))
			return ErrAppointmentCreationFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Appointment created: ID %d on %s", appointment.ID, appointment.AppointmentDate)
	return &appointment, nil
}

// UpdateAppointment overwrites the submitted fields of an existing appointment.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uint, input AppointmentInput) (*models.Appointment, error) {
	var updated *models.Appointment
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewAppointmentRepositoryTx(tx)

		appointment, err := repoTx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}

		if err := input.applyTo(appointment); err != nil {
			return fmt.Errorf("%w: %v", ErrAppointmentInvalidInput, err)
		}
		if err := validateEntity(s.validate, appointment); err != nil {
			return fmt.Errorf("%w: %v", ErrAppointmentInvalidInput, err)
		}
		if err := checkAppointmentReferences(ctx, tx, appointment); err != nil {
			return err
		}

		if err := repoTx.Update(ctx, appointment); err != nil {
			configslog.Log.Error("UpdateAppointment: save failed", zap.Uint("id", id), zap.Error(err))
			return ErrAppointmentUpdateFailed
		}
		updated = appointment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	configslog.SLog.Infof("Appointment updated: ID %d", id)
	return updated, nil
}

// DeleteAppointment removes an appointment.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		configslog.Log.Error("DeleteAppointment failed", zap.Uint("id", id), zap.Error(err))
		return ErrAppointmentDeletionFailed
	}
	configslog.SLog.Infof("Appointment deleted: ID %d", id)
	return nil
}

func checkAppointmentReferences(ctx context.Context, tx *gorm.DB, a *models.Appointment) error {
	checks := []struct {
		name   string
		id     uint
		exists func(context.Context, uint) (bool, error)
	}{
		{"patient", a.PatientID, repositories.NewPatientRepositoryTx(tx).Exists},
		{"doctor", a.DoctorID, repositories.NewDoctorRepositoryTx(tx).Exists},
		{"service", a.ServiceID, repositories.NewServiceRepositoryTx(tx).Exists},
	}
	for _, check := range checks {
		ok, err := check.exists(ctx, check.id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no %s with ID %d", ErrAppointmentInvalidReference, check.name, check.id)
		}
	}
	return nil
}

var _ IAppointmentService = (*AppointmentService)(nil)
