package api

import (
	"net/http"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/pricing"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type quotePayload struct {
	UnitPrice string                 `json:"unit_price"`
	Quantity  int                    `json:"quantity"`
	Strategy  map[string]interface{} `json:"strategy"`
}

type strategySpec struct {
	Name        string `json:"name"`
	Percent     string `json:"percent"`
	MinQuantity int    `json:"min_quantity"`
}

// decodeStrategy accepts the strategy object loosely typed, so percent and
// min_quantity may arrive as JSON numbers or strings.
func decodeStrategy(raw map[string]interface{}) (*strategySpec, error) {
	var spec strategySpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &spec,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return &spec, nil
}

func registerPricingRoutes() {
	webserver.ApiPOST("/pricing/quote", quotePrice)
}

func quotePrice(c echo.Context) error {
	var payload quotePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quote request", err.Error())
	}

	spec, err := decodeStrategy(payload.Strategy)
	if err != nil {
		return failErr(c, domain.NewValidationError("strategy is malformed"))
	}

	var msgs []string
	unitPrice, err := decimal.NewFromString(payload.UnitPrice)
	if err != nil {
		msgs = append(msgs, "unit_price must be a decimal number")
	} else if unitPrice.IsNegative() {
		msgs = append(msgs, "unit_price must be positive")
	}
	if payload.Quantity <= 0 {
		msgs = append(msgs, "quantity must be positive")
	}

	percent := decimal.Zero
	if spec.Percent != "" {
		percent, err = decimal.NewFromString(spec.Percent)
		if err != nil {
			msgs = append(msgs, "strategy.percent must be a decimal number")
		}
	}
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	strategy, err := pricing.Parse(spec.Name, percent, spec.MinQuantity)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownStrategy) {
			return failErr(c, domain.NewValidationError("unknown pricing strategy: "+spec.Name))
		}
		return failErr(c, err)
	}

	total := pricing.Calculate(unitPrice, payload.Quantity, strategy)
	return ok(c, map[string]interface{}{
		"unit_price":  unitPrice.StringFixed(2),
		"quantity":    payload.Quantity,
		"strategy":    strategy.Name(),
		"total_price": total.StringFixed(2),
	})
}
