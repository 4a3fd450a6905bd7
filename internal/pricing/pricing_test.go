package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRegularPrice(t *testing.T) {
	got := Calculate(dec("19.90"), 3, Regular())
	assert.True(t, got.Equal(dec("59.70")), "got %s", got)
}

func TestCategoryDiscount(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		qty     int
		percent string
		want    string
	}{
		{"ten percent", "100.00", 1, "10", "90.00"},
		{"fifteen percent multiple units", "60.00", 2, "15", "102.00"},
		{"rounds half up on the final amount", "10.01", 3, "50", "15.02"},
		{"full discount", "50.00", 4, "100", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(dec(tt.unit), tt.qty, CategoryDiscount(dec(tt.percent)))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCategoryDiscountZeroIsIdentity(t *testing.T) {
	for _, unit := range []string{"0.01", "9.99", "123.45", "60.00"} {
		for qty := 1; qty <= 7; qty++ {
			regular := Calculate(dec(unit), qty, Regular())
			discounted := Calculate(dec(unit), qty, CategoryDiscount(decimal.Zero))
			assert.True(t, regular.Equal(discounted),
				"unit=%s qty=%d regular=%s discounted=%s", unit, qty, regular, discounted)
		}
	}
}

func TestBulkDiscountBelowThresholdEqualsRegular(t *testing.T) {
	strategy := BulkDiscount(5, dec("15"))
	for qty := 1; qty < 5; qty++ {
		bulk := Calculate(dec("25.00"), qty, strategy)
		regular := Calculate(dec("25.00"), qty, Regular())
		assert.True(t, bulk.Equal(regular), "qty=%d bulk=%s regular=%s", qty, bulk, regular)
	}
}

func TestBulkDiscountAtAndAboveThreshold(t *testing.T) {
	strategy := BulkDiscount(5, dec("15"))

	// threshold comparison is inclusive
	atThreshold := Calculate(dec("25.00"), 5, strategy)
	assert.True(t, atThreshold.Equal(dec("106.25")), "got %s", atThreshold)

	above := Calculate(dec("25.00"), 8, strategy)
	assert.True(t, above.Equal(dec("170.00")), "got %s", above)
}

func TestParse(t *testing.T) {
	s, err := Parse("Bulk_Discount", dec("20"), 3)
	require.NoError(t, err)
	assert.Equal(t, NameBulkDiscount, s.Name())
	assert.Equal(t, 3, s.MinQuantity())

	s, err = Parse("REGULAR", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, NameRegular, s.Name())

	// empty defaults to regular
	s, err = Parse("", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, NameRegular, s.Name())

	_, err = Parse("flash_sale", decimal.Zero, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestZeroValueStrategyIsRegular(t *testing.T) {
	var s Strategy
	assert.Equal(t, NameRegular, s.Name())
	got := Calculate(dec("10.00"), 2, s)
	assert.True(t, got.Equal(dec("20.00")), "got %s", got)
}
