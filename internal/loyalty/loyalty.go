// Package loyalty computes the points a member earns for an order.
package loyalty

import (
	"github.com/shopspring/decimal"
)

// PointRate awards PointsPerUnit points for every UnitsOfCurrency spent.
type PointRate struct {
	UnitsOfCurrency float64 `json:"unitsOfCurrency" validate:"gt=0"`
	PointsPerUnit   int     `json:"pointsPerUnit" validate:"gt=0"`
}

// BonusTier multiplies the base points of an order whose total reaches MinimumSpend.
type BonusTier struct {
	MinimumSpend float64 `json:"minimumSpend" validate:"gt=0"`
	Multiplier   float64 `json:"multiplier" validate:"gt=1"`
}

// Config is loaded once at startup and passed explicitly to callers.
type Config struct {
	Rate  PointRate   `json:"rate"`
	Tiers []BonusTier `json:"tiers" validate:"dive"`
}

// DefaultConfig earns one point per ten currency units with no bonus tiers.
func DefaultConfig() Config {
	return Config{Rate: PointRate{UnitsOfCurrency: 10, PointsPerUnit: 1}}
}

func (c Config) Points(total float64) int {
	return CalcPoints(total, c.Rate, c.Tiers)
}

func (c Config) Next(total float64) (BonusTier, bool) {
	return NextThreshold(total, c.Tiers)
}

// CalcPoints returns floor(total/units)*pointsPerUnit, multiplied by the
// single highest tier the total reaches. Multipliers never stack.
func CalcPoints(total float64, rate PointRate, tiers []BonusTier) int {
	if total <= 0 || rate.UnitsOfCurrency <= 0 || rate.PointsPerUnit <= 0 {
		return 0
	}
	t := decimal.NewFromFloat(total)
	base := t.Div(decimal.NewFromFloat(rate.UnitsOfCurrency)).Floor().
		Mul(decimal.NewFromInt(int64(rate.PointsPerUnit)))

	if tier, ok := MatchTier(total, tiers); ok {
		base = base.Mul(decimal.NewFromFloat(tier.Multiplier)).Floor()
	}
	return int(base.IntPart())
}

// MatchTier finds the tier with the highest MinimumSpend not above total.
func MatchTier(total float64, tiers []BonusTier) (BonusTier, bool) {
	var (
		best  BonusTier
		found bool
	)
	for _, tier := range tiers {
		if total < tier.MinimumSpend {
			continue
		}
		if !found || tier.MinimumSpend > best.MinimumSpend {
			best, found = tier, true
		}
	}
	return best, found
}

// NextThreshold returns the lowest tier still above total, for progress display.
func NextThreshold(total float64, tiers []BonusTier) (BonusTier, bool) {
	var (
		next  BonusTier
		found bool
	)
	for _, tier := range tiers {
		if tier.MinimumSpend <= total {
			continue
		}
		if !found || tier.MinimumSpend < next.MinimumSpend {
			next, found = tier, true
		}
	}
	return next, found
}
