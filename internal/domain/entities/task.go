package entities

import (
	"time"

	"github.com/google/uuid"
)

// Task is the read-only view of a task owned by the task subsystem
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// TaskRecordCount is a task reference with the number of meeting records
// attached to it
type TaskRecordCount struct {
	TaskID       uuid.UUID `json:"taskId"`
	Title        string    `json:"title,omitempty"`
	RecordCount  int64     `json:"momCount"`
	LastRecordAt time.Time `json:"lastMomAt"`
}
