// Package pricing computes final prices for catalog items using a closed
// set of strategies. Evaluation is a pure function over decimal money
// values; rounding to cents happens once, on the final amount.
package pricing

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Strategy names accepted by Parse and reported by Name.
const (
	NameRegular          = "regular"
	NameCategoryDiscount = "category_discount"
	NameBulkDiscount     = "bulk_discount"
)

// ErrUnknownStrategy is returned by Parse for unsupported names.
var ErrUnknownStrategy = errors.New("unknown pricing strategy")

type kind int

const (
	kindRegular kind = iota
	kindCategoryDiscount
	kindBulkDiscount
)

// Strategy is a closed tagged variant: Regular, CategoryDiscount or
// BulkDiscount. The zero value is Regular.
type Strategy struct {
	kind        kind
	percent     decimal.Decimal
	minQuantity int
}

// Regular charges the plain subtotal.
func Regular() Strategy {
	return Strategy{kind: kindRegular}
}

// CategoryDiscount reduces the subtotal by percent. The percentage is
// expected in [0,100]; values above 100 produce a negative price and are a
// caller error, mirroring the persisted-price contract.
func CategoryDiscount(percent decimal.Decimal) Strategy {
	return Strategy{kind: kindCategoryDiscount, percent: percent}
}

// BulkDiscount applies the percentage discount only when the quantity
// reaches minQuantity. The comparison is inclusive: quantity equal to the
// threshold is discounted.
func BulkDiscount(minQuantity int, percent decimal.Decimal) Strategy {
	return Strategy{kind: kindBulkDiscount, percent: percent, minQuantity: minQuantity}
}

// Name returns the strategy identifier.
func (s Strategy) Name() string {
	switch s.kind {
	case kindCategoryDiscount:
		return NameCategoryDiscount
	case kindBulkDiscount:
		return NameBulkDiscount
	default:
		return NameRegular
	}
}

// Percent returns the configured discount percentage (zero for Regular).
func (s Strategy) Percent() decimal.Decimal {
	return s.percent
}

// MinQuantity returns the bulk threshold (zero unless BulkDiscount).
func (s Strategy) MinQuantity() int {
	return s.minQuantity
}

// Parse resolves a strategy by name. Lookup is case-insensitive; percent
// and minQuantity are only consulted by the strategies that need them.
func Parse(name string, percent decimal.Decimal, minQuantity int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameRegular, "":
		return Regular(), nil
	case NameCategoryDiscount:
		return CategoryDiscount(percent), nil
	case NameBulkDiscount:
		return BulkDiscount(minQuantity, percent), nil
	default:
		return Strategy{}, errors.Wrap(ErrUnknownStrategy, name)
	}
}

var hundred = decimal.NewFromInt(100)

// Calculate evaluates the final price for quantity units at unitPrice.
// The result is rounded half-up to 2 decimal places at the end; no
// intermediate rounding is performed.
func Calculate(unitPrice decimal.Decimal, quantity int, s Strategy) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	switch s.kind {
	case kindCategoryDiscount:
		return discount(subtotal, s.percent)
	case kindBulkDiscount:
		if quantity >= s.minQuantity {
			return discount(subtotal, s.percent)
		}
		return subtotal.Round(2)
	default:
		return subtotal.Round(2)
	}
}

func discount(subtotal, percent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(percent.Div(hundred))
	return subtotal.Mul(factor).Round(2)
}
