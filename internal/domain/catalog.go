package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StringList stores a JSON array of strings in a single text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsoniter.MarshalToString([]string(l))
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return jsoniter.Unmarshal(v, (*[]string)(l))
	case string:
		return jsoniter.UnmarshalFromString(v, (*[]string)(l))
	default:
		return fmt.Errorf("unsupported StringList source %T", src)
	}
}

type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index;size:200" json:"name" form:"name"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	Active      bool      `json:"active" form:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "category"
}

// Product is a catalog item. Prices are stored with 2 decimal places;
// weight with 3. Products are soft deleted so order history keeps valid
// references.
type Product struct {
	ID            int64                `gorm:"primaryKey" json:"id,string" form:"id"`
	CategoryId    int64                `gorm:"index" json:"category_id,string" form:"category_id"`
	Category      *Category            `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	Name          string               `gorm:"index;size:255" json:"name" form:"name"`
	Description   string               `gorm:"type:text" json:"description" form:"description"`
	Price         decimal.Decimal      `gorm:"type:numeric(12,2)" json:"price" form:"price"`
	StockQuantity int                  `gorm:"default:0" json:"stock_quantity" form:"stock_quantity"`
	Sku           string               `gorm:"uniqueIndex;size:64" json:"sku" form:"sku"`
	Images        StringList           `gorm:"type:text" json:"images" form:"images"`
	Weight        decimal.NullDecimal  `gorm:"type:numeric(8,3)" json:"weight" form:"weight"`
	Dimensions    string               `gorm:"size:100" json:"dimensions" form:"dimensions"`
	Active        bool                 `json:"active" form:"active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `gorm:"index" json:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
