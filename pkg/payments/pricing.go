package payments

import (
	"fmt"
	"strings"

	"github.com/minbarapp/minbar/pkg/errcodes"
)

// priceTable is the static two-level price lookup, keyed by currency then
// plan. Amounts are in major units. An unrecognized (currency, plan) pair is
// a validation error, never a zero-amount intent.
var priceTable = map[string]map[string]int64{
	"SAR": {
		"basic":   49,
		"premium": 99,
		"family":  149,
	},
	"USD": {
		"basic":   13,
		"premium": 26,
		"family":  39,
	},
	"EUR": {
		"basic":   12,
		"premium": 24,
		"family":  36,
	},
}

// PriceFor resolves the subscription price for a currency and plan.
func PriceFor(currency, planID string) (int64, error) {
	plans, ok := priceTable[strings.ToUpper(currency)]
	if !ok {
		return 0, errcodes.ValidationError(fmt.Sprintf("%q is not a supported currency", currency))
	}

	amount, ok := plans[strings.ToLower(planID)]
	if !ok {
		return 0, errcodes.ValidationError(fmt.Sprintf("%q is not a known plan for currency %q", planID, strings.ToUpper(currency)))
	}

	return amount, nil
}
