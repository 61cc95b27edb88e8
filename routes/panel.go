package routes

import (
	panel_handlers "klinika.admin/handlers/panel"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes wires the CRUD pages. Every entity follows the same
// list / add_X / edit_X/:id / delete_X/:id layout.
func registerPanelRoutes(app *fiber.App, deps Dependencies) {
	facilityService := services.NewFacilityService(deps.DB, deps.Validate)
	doctorService := services.NewDoctorService(deps.DB, deps.Validate)
	patientService := services.NewPatientService(deps.DB, deps.Validate)
	medicalServiceService := services.NewMedicalServiceService(deps.DB, deps.Validate)
	appointmentService := services.NewAppointmentService(deps.DB, deps.Validate)

	facilityHandler := panel_handlers.NewFacilityHandler(facilityService)
	doctorHandler := panel_handlers.NewDoctorHandler(doctorService, facilityService)
	patientHandler := panel_handlers.NewPatientHandler(patientService)
	serviceHandler := panel_handlers.NewServiceHandler(medicalServiceService, facilityService)
	appointmentHandler := panel_handlers.NewAppointmentHandler(appointmentService, patientService, doctorService, medicalServiceService)

	// --- Facilities ---
	app.Get("/", facilityHandler.ListFacilities)
	app.Get("/facilities", facilityHandler.ListFacilities)
	app.Get("/add_facility", facilityHandler.ShowCreateFacility)
	app.Post("/add_facility", facilityHandler.CreateFacility)
	app.Get("/edit_facility/:id", facilityHandler.ShowUpdateFacility)
	app.Post("/edit_facility/:id", facilityHandler.UpdateFacility)
	registerDelete(app, "/delete_facility/:id", facilityHandler.DeleteFacility)
	registerDelete(app, "/delete/:id", facilityHandler.DeleteFacility) // legacy path
	app.Get("/debug_facilities", facilityHandler.DebugFacilities)

	// --- Doctors ---
	app.Get("/doctors", doctorHandler.ListDoctors)
	app.Get("/add_doctor", doctorHandler.ShowCreateDoctor)
	app.Post("/add_doctor", doctorHandler.CreateDoctor)
	app.Get("/edit_doctor/:id", doctorHandler.ShowUpdateDoctor)
	app.Post("/edit_doctor/:id", doctorHandler.UpdateDoctor)
	registerDelete(app, "/delete_doctor/:id", doctorHandler.DeleteDoctor)

	// --- Patients ---
	app.Get("/patients", patientHandler.ListPatients)
	app.Get("/add_patient", patientHandler.ShowCreatePatient)
	app.Post("/add_patient", patientHandler.CreatePatient)
	app.Get("/edit_patient/:id", patientHandler.ShowUpdatePatient)
	app.Post("/edit_patient/:id", patientHandler.UpdatePatient)
	registerDelete(app, "/delete_patient/:id", patientHandler.DeletePatient)

	// --- Services ---
	app.Get("/services", serviceHandler.ListServices)
	app.Get("/add_service", serviceHandler.ShowCreateService)
	app.Post("/add_service", serviceHandler.CreateService)
	app.Get("/edit_service/:id", serviceHandler.ShowUpdateService)
	app.Post("/edit_service/:id", serviceHandler.UpdateService)
	registerDelete(app, "/delete_service/:id", serviceHandler.DeleteService)

	// --- Appointments ---
	app.Get("/appointments", appointmentHandler.ListAppointments)
	app.Get("/add_appointment", appointmentHandler.ShowCreateAppointment)
	app.Post("/add_appointment", appointmentHandler.CreateAppointment)
	app.Get("/edit_appointment/:id", appointmentHandler.ShowUpdateAppointment)
	app.Post("/edit_appointment/:id", appointmentHandler.UpdateAppointment)
	registerDelete(app, "/delete_appointment/:id", appointmentHandler.DeleteAppointment)
}

// registerDelete accepts GET links, POST forms and DELETE calls.
func registerDelete(app *fiber.App, path string, handler fiber.Handler) {
	app.Get(path, handler)
	app.Post(path, handler)
	app.Delete(path, handler)
}
