package models

import (
	"time"

	"github.com/taskboard-dev/taskboard/internal/types"
)

type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"` // owner (creator)
	AssignedTo  *uint          `gorm:"index" json:"assigned_to"`
	AssignedBy  *uint          `json:"assigned_by"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	Approved    bool           `gorm:"not null;default:false" json:"approved"` // lead sign-off
	Priority    types.Priority `gorm:"size:20;not null;default:medium" json:"priority"`
	Status      types.Status   `gorm:"size:20;not null;default:pending" json:"status"`
	Result      *string        `gorm:"type:text" json:"result"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DueDate     *time.Time     `json:"due_date"`
	CompletedAt *time.Time     `json:"completed_at"`

	// Relationships
	Notifications []Notification `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Task) TableName() string { return "tasks" }
