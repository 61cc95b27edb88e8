package models

import "github.com/shopspring/decimal"

// Service is a priced medical service offered by one facility.
type Service struct {
	BaseModel
	Name       string          `gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" validate:"-"`
	FacilityID uint            `gorm:"not null;index" validate:"required"`

	Facility MedicalFacility `gorm:"foreignKey:FacilityID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
}
