package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SpeciesDog   = "dog"
	SpeciesCat   = "cat"
	SpeciesBird  = "bird"
	SpeciesFish  = "fish"
	SpeciesOther = "other"
)

var PetSpecies = []string{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesFish, SpeciesOther}

var PetGenders = []string{"male", "female"}

// ValidSpecies reports whether s is one of the supported species values.
func ValidSpecies(s string) bool {
	for _, v := range PetSpecies {
		if v == s {
			return true
		}
	}
	return false
}

type Pet struct {
	ID        int64               `gorm:"primaryKey" json:"id,string" form:"id"`
	UserId    int64               `gorm:"index" json:"user_id,string" form:"user_id"`
	Name      string              `gorm:"index;size:200" json:"name" form:"name"`
	Species   string              `gorm:"size:16" json:"species" form:"species"`
	Breed     string              `gorm:"size:100" json:"breed" form:"breed"`
	BirthDate *time.Time          `json:"birth_date" form:"birth_date"`
	Gender    string              `gorm:"size:16" json:"gender" form:"gender"`
	Weight    decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"weight" form:"weight"`
	Notes     string              `gorm:"type:text" json:"notes" form:"notes"`
	Photo     string              `gorm:"size:1024" json:"photo" form:"photo"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TableName Specify table name
func (Pet) TableName() string {
	return "pet"
}
