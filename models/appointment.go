package models

// Appointment is a scheduled visit linking a patient, a doctor and a service.
// AppointmentDate is an opaque string and is stored exactly as submitted.
type Appointment struct {
	BaseModel
	PatientID       uint   `gorm:"not null;index" validate:"required"`
	DoctorID        uint   `gorm:"not null;index" validate:"required"`
	ServiceID       uint   `gorm:"not null;index" validate:"required"`
	AppointmentDate string `gorm:"type:varchar(20);not null" validate:"required,max=20"`

	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
	Service Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
}
