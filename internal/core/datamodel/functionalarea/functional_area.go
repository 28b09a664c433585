package functionalarea

import "time"

type FunctionalArea struct {
	ID          int64     `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex;size:2;not null"`
	Name        string    `gorm:"column:name;uniqueIndex;size:100;not null"`
	Description string    `gorm:"column:description;size:255;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (FunctionalArea) TableName() string {
	return "functional_areas"
}
