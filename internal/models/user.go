package models

import (
	"time"

	"github.com/taskboard-dev/taskboard/internal/types"
)

type User struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Username              string     `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email                 string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	FullName              string     `gorm:"size:120;not null" json:"full_name"`
	Role                  types.Role `gorm:"size:20;not null;default:member" json:"role"`
	Password              *string    `gorm:"size:200" json:"-"`
	PasswordResetRequired bool       `gorm:"not null;default:false" json:"password_reset_required"`
	CreatedAt             time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	// Relationships
	Tasks          []Task         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AssignedTasks  []Task         `gorm:"foreignKey:AssignedTo;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	DelegatedTasks []Task         `gorm:"foreignKey:AssignedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Notifications  []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }
