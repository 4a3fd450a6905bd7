// Package catalog implements product and category reads and writes on top
// of the shared gorm connection.
package catalog

// GetProductsByCategoryQuery encapsulates the read criteria for a
// category's product listing.
type GetProductsByCategoryQuery struct {
	CategoryId int64
	ActiveOnly bool
	InStock    bool   // only products with stock_quantity > 0
	OrderBy    string // whitelisted column, defaults to name
	OrderDesc  bool
	Limit      int // <= 0 means no limit
}

var productOrderColumns = map[string]string{
	"id":             "id",
	"name":           "name",
	"price":          "price",
	"stock_quantity": "stock_quantity",
	"created_at":     "created_at",
}

// OrderClause resolves the ORDER BY fragment, falling back to name for
// unknown columns.
func (q GetProductsByCategoryQuery) OrderClause() string {
	col, ok := productOrderColumns[q.OrderBy]
	if !ok {
		col = "name"
	}
	if q.OrderDesc {
		return col + " DESC"
	}
	return col + " ASC"
}
