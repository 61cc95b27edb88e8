package models

// MedicalFacility is a clinic location. Doctors and services belong to it.
type MedicalFacility struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Address string `gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Phone   string `gorm:"type:varchar(20);not null" validate:"required,max=20"`
}
