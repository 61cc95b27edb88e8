package services_test

import (
	"context"
	"strconv"
	"testing"

	"klinika.admin/models"
	"klinika.admin/services"
	"klinika.admin/testutil"
	"klinika.admin/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func str(s string) *string { return &s }

type fixture struct {
	db           *gorm.DB
	facilities   services.IFacilityService
	doctors      services.IDoctorService
	patients     services.IPatientService
	services     services.IMedicalServiceService
	appointments services.IAppointmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	v := utils.NewValidator()
	return &fixture{
		db:           db,
		facilities:   services.NewFacilityService(db, v),
		doctors:      services.NewDoctorService(db, v),
		patients:     services.NewPatientService(db, v),
		services:     services.NewMedicalServiceService(db, v),
		appointments: services.NewAppointmentService(db, v),
	}
}

func (f *fixture) facility(t *testing.T, name string) *models.MedicalFacility {
	t.Helper()
	facility, err := f.facilities.CreateFacility(context.Background(), services.FacilityInput{
		Name: str(name), Address: str("1 Test Street"), Phone: str("555-0000"),
	})
	require.NoError(t, err)
	return facility
}

// booking creates one appointment with everything it references.
func (f *fixture) booking(t *testing.T) *models.Appointment {
	t.Helper()
	ctx := context.Background()
	facility := f.facility(t, "Booking Clinic")
	doctor, err := f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Who"), Specialization: str("General"), FacilityID: str(uintStr(facility.ID)),
	})
	require.NoError(t, err)
	patient, err := f.patients.CreatePatient(ctx, services.PatientInput{
		Name: str("Amy Pond"), BirthDate: str("1990-01-01"), Phone: str("555-1111"),
	})
	require.NoError(t, err)
	service, err := f.services.CreateService(ctx, services.ServiceInput{
		Name: str("Checkup"), Price: str("30"), FacilityID: str(uintStr(facility.ID)),
	})
	require.NoError(t, err)
	appointment, err := f.appointments.CreateAppointment(ctx, services.AppointmentInput{
		PatientID:       str(uintStr(patient.ID)),
		DoctorID:        str(uintStr(doctor.ID)),
		ServiceID:       str(uintStr(service.ID)),
		AppointmentDate: str("2024-06-01 10:00"),
	})
	require.NoError(t, err)
	return appointment
}

func uintStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestFacilityService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.facilities.CreateFacility(ctx, services.FacilityInput{
		Name: str("  <b>North Clinic</b> "), Address: str("2 North Road"), Phone: str("555-0102"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "North Clinic", created.Name)

	all, err := f.facilities.GetAllFacilities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestFacilityService_CreateRequiresAllFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.facilities.CreateFacility(context.Background(), services.FacilityInput{
		Name: str("Incomplete"), Phone: str("555"),
	})
	require.ErrorIs(t, err, services.ErrFacilityInvalidInput)
	assert.Contains(t, err.Error(), "Address is required")

	_, err = f.facilities.CreateFacility(context.Background(), services.FacilityInput{
		Name: str("Too long phone"), Address: str("x"), Phone: str("123456789012345678901"),
	})
	require.ErrorIs(t, err, services.ErrFacilityInvalidInput)
}

func TestFacilityService_UpdateOnlySubmittedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	target := f.facility(t, "Target")
	other := f.facility(t, "Other")

	updated, err := f.facilities.UpdateFacility(ctx, target.ID, services.FacilityInput{Phone: str("555-9999")})
	require.NoError(t, err)
	assert.Equal(t, "Target", updated.Name)
	assert.Equal(t, "1 Test Street", updated.Address)
	assert.Equal(t, "555-9999", updated.Phone)

	reloaded, err := f.facilities.GetFacilityByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", reloaded.Name)
	assert.Equal(t, "555-0000", reloaded.Phone)
}

func TestFacilityService_UpdateKeepsStoredMarkup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.facilities.CreateFacility(ctx, services.FacilityInput{
		Name: str("Lab &lt;North&gt; Wing"), Address: str("3 Lab Road"), Phone: str("1"),
	})
	require.NoError(t, err)
	stored := created.Name

	_, err = f.facilities.UpdateFacility(ctx, created.ID, services.FacilityInput{Phone: str("2")})
	require.NoError(t, err)
	reloaded, err := f.facilities.GetFacilityByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, reloaded.Name)
	assert.Equal(t, "2", reloaded.Phone)

	// Rows written outside the panel keep their text untouched on edit.
	legacy := models.MedicalFacility{Name: "Lab <North> Wing", Address: "4 Old Road", Phone: "3"}
	require.NoError(t, f.db.Create(&legacy).Error)

	_, err = f.facilities.UpdateFacility(ctx, legacy.ID, services.FacilityInput{Phone: str("4")})
	require.NoError(t, err)
	reloaded, err = f.facilities.GetFacilityByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lab <North> Wing", reloaded.Name)
	assert.Equal(t, "4 Old Road", reloaded.Address)
	assert.Equal(t, "4", reloaded.Phone)
}

func TestFacilityService_UpdateRejectsBlankField(t *testing.T) {
	f := newFixture(t)
	target := f.facility(t, "Target")

	_, err := f.facilities.UpdateFacility(context.Background(), target.ID, services.FacilityInput{Name: str("   ")})
	require.ErrorIs(t, err, services.ErrFacilityInvalidInput)

	reloaded, err := f.facilities.GetFacilityByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Target", reloaded.Name)
}

func TestFacilityService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.facilities.GetFacilityByID(ctx, 42)
	assert.ErrorIs(t, err, services.ErrFacilityNotFound)
	_, err = f.facilities.UpdateFacility(ctx, 42, services.FacilityInput{Name: str("x")})
	assert.ErrorIs(t, err, services.ErrFacilityNotFound)
	assert.ErrorIs(t, f.facilities.DeleteFacility(ctx, 42), services.ErrFacilityNotFound)
}

func TestFacilityService_DeleteRejectedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	facility := f.facility(t, "Busy Clinic")
	_, err := f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Busy"), Specialization: str("ENT"), FacilityID: str(uintStr(facility.ID)),
	})
	require.NoError(t, err)

	err = f.facilities.DeleteFacility(ctx, facility.ID)
	require.ErrorIs(t, err, services.ErrFacilityInUse)

	_, err = f.facilities.GetFacilityByID(ctx, facility.ID)
	assert.NoError(t, err)
}

func TestFacilityService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	facility := f.facility(t, "Empty Clinic")

	require.NoError(t, f.facilities.DeleteFacility(ctx, facility.ID))
	_, err := f.facilities.GetFacilityByID(ctx, facility.ID)
	assert.ErrorIs(t, err, services.ErrFacilityNotFound)
}

func TestDoctorService_ReferenceChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Nobody"), Specialization: str("None"), FacilityID: str("999"),
	})
	assert.ErrorIs(t, err, services.ErrDoctorInvalidFacility)

	_, err = f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Nobody"), Specialization: str("None"), FacilityID: str("abc"),
	})
	assert.ErrorIs(t, err, services.ErrDoctorInvalidInput)

	_, err = f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Nobody"), Specialization: str("None"),
	})
	assert.ErrorIs(t, err, services.ErrDoctorInvalidInput)

	all, err := f.doctors.GetAllDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDoctorService_UpdateMovesFacility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.facility(t, "First")
	second := f.facility(t, "Second")
	doctor, err := f.doctors.CreateDoctor(ctx, services.DoctorInput{
		Name: str("Dr. Move"), Specialization: str("Surgery"), FacilityID: str(uintStr(first.ID)),
	})
	require.NoError(t, err)

	_, err = f.doctors.UpdateDoctor(ctx, doctor.ID, services.DoctorInput{FacilityID: str(uintStr(second.ID))})
	require.NoError(t, err)

	reloaded, err := f.doctors.GetDoctorByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, reloaded.FacilityID)
	assert.Equal(t, "Second", reloaded.Facility.Name)
	assert.Equal(t, "Surgery", reloaded.Specialization)

	_, err = f.doctors.UpdateDoctor(ctx, doctor.ID, services.DoctorInput{FacilityID: str("777")})
	assert.ErrorIs(t, err, services.ErrDoctorInvalidFacility)
}

func TestMedicalServiceService_Price(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	facility := f.facility(t, "Priced")

	created, err := f.services.CreateService(ctx, services.ServiceInput{
		Name: str("X-Ray"), Price: str("12.5"), FacilityID: str(uintStr(facility.ID)),
	})
	require.NoError(t, err)

	reloaded, err := f.services.GetServiceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.50").Equal(reloaded.Price), "got %s", reloaded.Price)

	for _, bad := range []string{"-1", "abc", "", "12,5", "1,000.50"} {
		_, err := f.services.CreateService(ctx, services.ServiceInput{
			Name: str("Bad"), Price: str(bad), FacilityID: str(uintStr(facility.ID)),
		})
		assert.ErrorIs(t, err, services.ErrServiceInvalidInput, "price %q", bad)
	}

	_, err = f.services.CreateService(ctx, services.ServiceInput{
		Name: str("No price"), FacilityID: str(uintStr(facility.ID)),
	})
	assert.ErrorIs(t, err, services.ErrServiceInvalidInput)

	_, err = f.services.CreateService(ctx, services.ServiceInput{
		Name: str("Nowhere"), Price: str("1"), FacilityID: str("31337"),
	})
	assert.ErrorIs(t, err, services.ErrServiceInvalidFacility)
}

func TestAppointmentService_RoundTripsAfterEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appointment := f.booking(t)

	date := " 2024-07-15 14:30 "
	_, err := f.appointments.UpdateAppointment(ctx, appointment.ID, services.AppointmentInput{AppointmentDate: str(date)})
	require.NoError(t, err)

	reloaded, err := f.appointments.GetAppointmentByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.PatientID, reloaded.PatientID)
	assert.Equal(t, appointment.DoctorID, reloaded.DoctorID)
	assert.Equal(t, appointment.ServiceID, reloaded.ServiceID)
	assert.Equal(t, date, reloaded.AppointmentDate)
	assert.Equal(t, "Amy Pond", reloaded.Patient.Name)
}

func TestAppointmentService_InvalidReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appointment := f.booking(t)

	_, err := f.appointments.CreateAppointment(ctx, services.AppointmentInput{
		PatientID:       str(uintStr(appointment.PatientID)),
		DoctorID:        str("404"),
		ServiceID:       str(uintStr(appointment.ServiceID)),
		AppointmentDate: str("2024-01-01"),
	})
	require.ErrorIs(t, err, services.ErrAppointmentInvalidReference)
	assert.Contains(t, err.Error(), "doctor")

	_, err = f.appointments.UpdateAppointment(ctx, appointment.ID, services.AppointmentInput{ServiceID: str("404")})
	require.ErrorIs(t, err, services.ErrAppointmentInvalidReference)

	reloaded, err := f.appointments.GetAppointmentByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ServiceID, reloaded.ServiceID)
}

func TestReferencedRowsCannotBeDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appointment := f.booking(t)

	assert.ErrorIs(t, f.patients.DeletePatient(ctx, appointment.PatientID), services.ErrPatientInUse)
	assert.ErrorIs(t, f.doctors.DeleteDoctor(ctx, appointment.DoctorID), services.ErrDoctorInUse)
	assert.ErrorIs(t, f.services.DeleteService(ctx, appointment.ServiceID), services.ErrServiceInUse)

	require.NoError(t, f.appointments.DeleteAppointment(ctx, appointment.ID))
	assert.ErrorIs(t, f.appointments.DeleteAppointment(ctx, appointment.ID), services.ErrAppointmentNotFound)

	assert.NoError(t, f.patients.DeletePatient(ctx, appointment.PatientID))
	assert.NoError(t, f.doctors.DeleteDoctor(ctx, appointment.DoctorID))
	assert.NoError(t, f.services.DeleteService(ctx, appointment.ServiceID))
}

func TestDashboardService_Counts(t *testing.T) {
	f := newFixture(t)
	f.booking(t)

	counts, err := services.NewDashboardService(f.db).GetNetworkCounts(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Facilities)
	assert.EqualValues(t, 1, counts.Doctors)
	assert.EqualValues(t, 1, counts.Patients)
	assert.EqualValues(t, 1, counts.Services)
	assert.EqualValues(t, 1, counts.Appointments)
}
