package models

// Patient is independent of facilities. BirthDate is kept as entered.
type Patient struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null" validate:"required,max=100"`
	BirthDate string `gorm:"type:varchar(20);not null" validate:"required,max=20"`
	Phone     string `gorm:"type:varchar(20);not null" validate:"required,max=20"`
}
