package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment statuses. Any status may follow any other; only membership
// in this set is enforced (see booking.UpdateAppointmentStatusCommand).
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var AppointmentStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ValidAppointmentStatus reports whether s is one of the five status literals.
func ValidAppointmentStatus(s string) bool {
	for _, v := range AppointmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID          int64           `gorm:"primaryKey" json:"id,string" form:"id"`
	UserId      int64           `gorm:"index" json:"user_id,string" form:"user_id"`
	User        *SysUser        `gorm:"foreignKey:UserId" json:"user,omitempty"`
	PetId       int64           `gorm:"index" json:"pet_id,string" form:"pet_id"`
	Pet         *Pet            `gorm:"foreignKey:PetId" json:"pet,omitempty"`
	ServiceId   int64           `gorm:"index" json:"service_id,string" form:"service_id"`
	Service     *GroomService   `gorm:"foreignKey:ServiceId" json:"service,omitempty"`
	ScheduledAt time.Time       `gorm:"index" json:"scheduled_at" form:"scheduled_at"`
	Status      string          `gorm:"size:20;index;default:'pending'" json:"status" form:"status"`
	Notes       string          `gorm:"type:text" json:"notes" form:"notes"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price" form:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Appointment) TableName() string {
	return "appointment"
}
