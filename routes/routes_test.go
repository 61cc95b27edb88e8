package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"klinika.admin/configs"
	"klinika.admin/models"
	"klinika.admin/routes"
	"klinika.admin/testutil"
	"klinika.admin/utils"
	"klinika.admin/views"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, cfg *configs.Config) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	if cfg == nil {
		cfg = &configs.Config{}
	}
	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(),
		ErrorHandler: routes.ErrorHandler,
	})
	routes.SetupRoutes(app, routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Validate: utils.NewValidator(),
	})
	return app, db
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	return do(t, app, httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, app, req)
}

func seedFacility(t *testing.T, db *gorm.DB, name, address, phone string) models.MedicalFacility {
	t.Helper()
	facility := models.MedicalFacility{Name: name, Address: address, Phone: phone}
	require.NoError(t, db.Create(&facility).Error)
	return facility
}

func TestCreateFacilityThenListShowsItOnce(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, _ := postForm(t, app, "/add_facility", url.Values{
		"name": {"Harbor Clinic"}, "address": {"7 Dock Lane"}, "phone": {"555-0707"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/facilities", resp.Header.Get("Location"))

	for _, path := range []string{"/facilities", "/"} {
		resp, body := get(t, app, path)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Equal(t, 1, strings.Count(body, "<td>Harbor Clinic</td>"), path)
	}
}

func TestCreateFacilityWithMissingFieldRedirectsBack(t *testing.T) {
	app, db := newTestApp(t, nil)

	resp, _ := postForm(t, app, "/add_facility", url.Values{"name": {"No Address"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/add_facility", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.MedicalFacility{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEditFacilityChangesOnlySubmittedFields(t *testing.T) {
	app, db := newTestApp(t, nil)
	target := seedFacility(t, db, "Target", "1 First St", "555-0001")
	other := seedFacility(t, db, "Other", "2 Second St", "555-0002")

	resp, body := get(t, app, "/edit_facility/"+itoa(target.ID))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="1 First St"`)

	resp, _ = postForm(t, app, "/edit_facility/"+itoa(target.ID), url.Values{"phone": {"555-9999"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/facilities", resp.Header.Get("Location"))

	var reloaded, untouched models.MedicalFacility
	require.NoError(t, db.First(&reloaded, target.ID).Error)
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.Equal(t, "Target", reloaded.Name)
	assert.Equal(t, "1 First St", reloaded.Address)
	assert.Equal(t, "555-9999", reloaded.Phone)
	assert.Equal(t, "555-0002", untouched.Phone)
}

func TestMissingRowsAreNotFound(t *testing.T) {
	app, _ := newTestApp(t, nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/delete_facility/999"},
		{http.MethodPost, "/delete_facility/999"},
		{http.MethodDelete, "/delete_facility/999"},
		{http.MethodGet, "/delete/999"},
		{http.MethodGet, "/edit_facility/999"},
		{http.MethodPost, "/edit_facility/999"},
		{http.MethodGet, "/edit_facility/abc"},
		{http.MethodGet, "/delete_doctor/999"},
		{http.MethodGet, "/edit_doctor/999"},
		{http.MethodGet, "/delete_patient/999"},
		{http.MethodGet, "/edit_patient/999"},
		{http.MethodGet, "/delete_service/999"},
		{http.MethodGet, "/edit_service/999"},
		{http.MethodGet, "/delete_appointment/999"},
		{http.MethodGet, "/edit_appointment/999"},
		{http.MethodGet, "/no/such/page"},
	}
	for _, tc := range cases {
		var req *http.Request
		if tc.method == http.MethodPost {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(""))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		resp, body := do(t, app, req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Contains(t, body, "404", "%s %s", tc.method, tc.path)
	}
}

func TestDeleteFacility(t *testing.T) {
	app, db := newTestApp(t, nil)
	viaNew := seedFacility(t, db, "Gone", "x", "1")
	viaLegacy := seedFacility(t, db, "Also Gone", "y", "2")

	resp, _ := get(t, app, "/delete_facility/"+itoa(viaNew.ID))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	resp, _ = postForm(t, app, "/delete/"+itoa(viaLegacy.ID), url.Values{})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.MedicalFacility{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteReferencedFacilityIsRejected(t *testing.T) {
	app, db := newTestApp(t, nil)
	facility := seedFacility(t, db, "Busy", "x", "1")
	require.NoError(t, db.Create(&models.Doctor{Name: "Dr. Busy", Specialization: "ENT", FacilityID: facility.ID}).Error)

	resp, _ := get(t, app, "/delete_facility/"+itoa(facility.ID))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/facilities", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.MedicalFacility{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDebugFacilitiesFormat(t *testing.T) {
	app, db := newTestApp(t, nil)
	a := seedFacility(t, db, "Alpha", "1 A Street", "111")
	b := seedFacility(t, db, "Beta", "2 B Street", "222")

	resp, body := get(t, app, "/debug_facilities")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	expected := itoa(a.ID) + ". Alpha - 1 A Street (111)<br>" + itoa(b.ID) + ". Beta - 2 B Street (222)"
	assert.Equal(t, expected, body)
}

func TestAppointmentRoundTripThroughForms(t *testing.T) {
	app, db := newTestApp(t, nil)
	facility := seedFacility(t, db, "Main", "x", "1")
	doctor := models.Doctor{Name: "Dr. Grey", Specialization: "Surgery", FacilityID: facility.ID}
	require.NoError(t, db.Create(&doctor).Error)
	patient := models.Patient{Name: "Ann Lee", BirthDate: "1970-02-03", Phone: "555"}
	require.NoError(t, db.Create(&patient).Error)
	other := models.Patient{Name: "Bo Kim", BirthDate: "1980-04-05", Phone: "556"}
	require.NoError(t, db.Create(&other).Error)
	service := models.Service{Name: "Consult", Price: decimal.RequireFromString("20.00"), FacilityID: facility.ID}
	require.NoError(t, db.Create(&service).Error)

	resp, body := get(t, app, "/add_appointment")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Ann Lee")
	assert.Contains(t, body, "Consult - 20.00")

	resp, _ = postForm(t, app, "/add_appointment", url.Values{
		"patient_id":       {itoa(patient.ID)},
		"doctor_id":        {itoa(doctor.ID)},
		"service_id":       {itoa(service.ID)},
		"appointment_date": {"2024-09-09 08:15"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/appointments", resp.Header.Get("Location"))

	var appointment models.Appointment
	require.NoError(t, db.First(&appointment).Error)

	resp, _ = postForm(t, app, "/edit_appointment/"+itoa(appointment.ID), url.Values{"patient_id": {itoa(other.ID)}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, appointment.ID).Error)
	assert.Equal(t, other.ID, reloaded.PatientID)
	assert.Equal(t, doctor.ID, reloaded.DoctorID)
	assert.Equal(t, service.ID, reloaded.ServiceID)
	assert.Equal(t, "2024-09-09 08:15", reloaded.AppointmentDate)

	resp, body = get(t, app, "/appointments")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<td>Bo Kim</td>")
	assert.Contains(t, body, "<td>2024-09-09 08:15</td>")
}

func TestAppointmentWithUnknownDoctorIsRejected(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, _ := postForm(t, app, "/add_appointment", url.Values{
		"patient_id": {"1"}, "doctor_id": {"2"}, "service_id": {"3"}, "appointment_date": {"2024-01-01"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/add_appointment", resp.Header.Get("Location"))
}

// network seeds one row of every kind and returns their ids.
type network struct {
	facility, doctor, patient, service, appointment uint
}

func seedNetwork(t *testing.T, db *gorm.DB, tag string) network {
	t.Helper()
	facility := seedFacility(t, db, "Clinic "+tag, "1 Net Road", "555")
	doctor := models.Doctor{Name: "Dr. " + tag, Specialization: "GP", FacilityID: facility.ID}
	require.NoError(t, db.Create(&doctor).Error)
	patient := models.Patient{Name: "Patient " + tag, BirthDate: "1990-01-01", Phone: "556"}
	require.NoError(t, db.Create(&patient).Error)
	service := models.Service{Name: "Service " + tag, Price: decimal.RequireFromString("10.00"), FacilityID: facility.ID}
	require.NoError(t, db.Create(&service).Error)
	appointment := models.Appointment{
		PatientID: patient.ID, DoctorID: doctor.ID, ServiceID: service.ID, AppointmentDate: "2024-01-01 " + tag,
	}
	require.NoError(t, db.Create(&appointment).Error)
	return network{facility.ID, doctor.ID, patient.ID, service.ID, appointment.ID}
}

func loadRow(t *testing.T, db *gorm.DB, table string, id uint) map[string]any {
	t.Helper()
	row := map[string]any{}
	require.NoError(t, db.Table(table).Where("id = ?", id).Take(&row).Error)
	return row
}

func TestCreateThenListShowsItOnce(t *testing.T) {
	app, db := newTestApp(t, nil)
	n := seedNetwork(t, db, "A")

	cases := []struct {
		name   string
		add    string
		list   string
		form   url.Values
		marker string
	}{
		{"doctor", "/add_doctor", "/doctors",
			url.Values{"name": {"Dr. Unique"}, "specialization": {"ENT"}, "facility_id": {itoa(n.facility)}},
			"<td>Dr. Unique</td>"},
		{"patient", "/add_patient", "/patients",
			url.Values{"name": {"Una Unique"}, "birth_date": {"2001-02-03"}, "phone": {"555-0303"}},
			"<td>Una Unique</td>"},
		{"service", "/add_service", "/services",
			url.Values{"name": {"Unique Scan"}, "price": {"42.10"}, "facility_id": {itoa(n.facility)}},
			"<td>Unique Scan</td>"},
		{"appointment", "/add_appointment", "/appointments",
			url.Values{
				"patient_id": {itoa(n.patient)}, "doctor_id": {itoa(n.doctor)},
				"service_id": {itoa(n.service)}, "appointment_date": {"2031-05-06 07:08"},
			},
			"<td>2031-05-06 07:08</td>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := postForm(t, app, tc.add, tc.form)
			require.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, tc.list, resp.Header.Get("Location"))

			resp, body := get(t, app, tc.list)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, 1, strings.Count(body, tc.marker))
		})
	}
}

func TestEditChangesOnlySubmittedFieldOfOneRow(t *testing.T) {
	app, db := newTestApp(t, nil)
	target := seedNetwork(t, db, "T")
	other := seedNetwork(t, db, "O")

	cases := []struct {
		name   string
		table  string
		target uint
		other  uint
		path   string
		list   string
		column string
		value  string
	}{
		{"doctor", "doctors", target.doctor, other.doctor, "/edit_doctor/", "/doctors", "specialization", "Cardiology"},
		{"patient", "patients", target.patient, other.patient, "/edit_patient/", "/patients", "phone", "555-4242"},
		{"service", "services", target.service, other.service, "/edit_service/", "/services", "name", "Renamed Scan"},
		{"appointment", "appointments", target.appointment, other.appointment, "/edit_appointment/", "/appointments", "appointment_date", "2030-12-31 23:59"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := loadRow(t, db, tc.table, tc.target)
			otherBefore := loadRow(t, db, tc.table, tc.other)

			resp, _ := postForm(t, app, tc.path+itoa(tc.target), url.Values{tc.column: {tc.value}})
			require.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, tc.list, resp.Header.Get("Location"))

			after := loadRow(t, db, tc.table, tc.target)
			assert.Equal(t, tc.value, after[tc.column])
			for col, want := range before {
				if col == tc.column || col == "created_at" || col == "updated_at" {
					continue
				}
				assert.Equal(t, want, after[col], col)
			}
			assert.Equal(t, otherBefore, loadRow(t, db, tc.table, tc.other))
		})
	}
}

func TestEntityPagesRender(t *testing.T) {
	app, db := newTestApp(t, nil)
	facility := seedFacility(t, db, "Render Clinic", "x", "1")
	require.NoError(t, db.Create(&models.Doctor{Name: "Dr. Render", Specialization: "GP", FacilityID: facility.ID}).Error)
	require.NoError(t, db.Create(&models.Service{Name: "Scan", Price: decimal.RequireFromString("99.90"), FacilityID: facility.ID}).Error)

	for _, path := range []string{
		"/dashboard", "/doctors", "/add_doctor", "/edit_doctor/1",
		"/patients", "/add_patient", "/services", "/add_service", "/edit_service/1",
		"/appointments", "/add_facility",
	} {
		resp, body := get(t, app, path)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, "</html>", path)
	}

	_, body := get(t, app, "/services")
	assert.Contains(t, body, "<td>99.90</td>")
	_, body = get(t, app, "/edit_doctor/1")
	assert.Contains(t, body, "selected")
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := get(t, app, "/health")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	get(t, app, "/facilities")
	resp, body = get(t, app, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "klinika_http_requests_total")
}

func TestMetricsRouteLabels(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, _ := get(t, app, "/edit_facility/999")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, app, "/no/such/page")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, body := get(t, app, "/metrics")
	assert.Contains(t, body, `route="/edit_facility/:id",status="404"`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
}

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	app, _ := newTestApp(t, &configs.Config{AdminUser: "admin", AdminPasswordHash: string(hash)})

	resp, _ := get(t, app, "/facilities")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/facilities", nil)
	req.SetBasicAuth("admin", "wrong")
	resp, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/facilities", nil)
	req.SetBasicAuth("admin", "s3cret")
	resp, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = get(t, app, "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
