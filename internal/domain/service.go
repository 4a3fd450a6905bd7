package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroomService is a bookable grooming service (bath, trim, nail clipping).
type GroomService struct {
	ID              int64           `gorm:"primaryKey" json:"id,string" form:"id"`
	Name            string          `gorm:"index;size:200" json:"name" form:"name"`
	Description     string          `gorm:"type:text" json:"description" form:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)" json:"price" form:"price"`
	DurationMinutes int             `gorm:"default:30" json:"duration_minutes" form:"duration_minutes"`
	Active          bool            `json:"active" form:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (GroomService) TableName() string {
	return "groom_service"
}
