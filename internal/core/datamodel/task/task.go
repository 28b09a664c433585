package task

import "time"

type Task struct {
	ID           int64      `gorm:"primaryKey"`
	Description  string     `gorm:"column:description;size:255;not null"`
	CreationDate time.Time  `gorm:"column:creation_date;not null"`
	DueDate      *time.Time `gorm:"column:due_date"`
}

func (Task) TableName() string {
	return "tasks"
}
