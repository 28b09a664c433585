package reference

import "time"

type ReferenceEntry struct {
	ID          int64     `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;size:50;not null"`
	Description string    `gorm:"column:description;size:255"`
	Category    string    `gorm:"column:category;size:100;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ReferenceEntry) TableName() string {
	return "reference_table"
}
