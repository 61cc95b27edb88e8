package models

// Doctor works at exactly one facility.
type Doctor struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Specialization string `gorm:"type:varchar(100);not null" validate:"required,max=100"`
	FacilityID     uint   `gorm:"not null;index" validate:"required"`

	Facility MedicalFacility `gorm:"foreignKey:FacilityID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
}
