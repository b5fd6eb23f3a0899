package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var rate = PointRate{UnitsOfCurrency: 10, PointsPerUnit: 1}

func TestCalcPointsBaseRate(t *testing.T) {
	assert.Equal(t, 9, CalcPoints(95, rate, nil))
	assert.Equal(t, 0, CalcPoints(9.99, rate, nil))
	assert.Equal(t, 0, CalcPoints(-50, rate, nil))
}

func TestCalcPointsTierMultiplier(t *testing.T) {
	tiers := []BonusTier{{MinimumSpend: 200, Multiplier: 2}}

	assert.Equal(t, 50, CalcPoints(250, rate, tiers))
	assert.Equal(t, 40, CalcPoints(200, rate, tiers), "threshold is inclusive")
	assert.Equal(t, 19, CalcPoints(199, rate, tiers))
}

func TestCalcPointsHighestTierOnly(t *testing.T) {
	tiers := []BonusTier{
		{MinimumSpend: 1000, Multiplier: 3},
		{MinimumSpend: 200, Multiplier: 2},
	}

	assert.Equal(t, 300, CalcPoints(1000, rate, tiers))
	assert.Equal(t, 100, CalcPoints(500, rate, tiers))
}

func TestCalcPointsFractionalMultiplierFloors(t *testing.T) {
	tiers := []BonusTier{{MinimumSpend: 100, Multiplier: 1.5}}

	assert.Equal(t, 16, CalcPoints(110, rate, tiers))
}

func TestCalcPointsPointsPerUnit(t *testing.T) {
	assert.Equal(t, 27, CalcPoints(95, PointRate{UnitsOfCurrency: 10, PointsPerUnit: 3}, nil))
	assert.Equal(t, 0, CalcPoints(95, PointRate{}, nil))
}

func TestNextThreshold(t *testing.T) {
	tiers := []BonusTier{{MinimumSpend: 200, Multiplier: 2}}

	next, ok := NextThreshold(150, tiers)
	assert.True(t, ok)
	assert.Equal(t, tiers[0], next)

	_, ok = NextThreshold(250, tiers)
	assert.False(t, ok)
}

func TestNextThresholdPicksLowestAbove(t *testing.T) {
	tiers := []BonusTier{
		{MinimumSpend: 1000, Multiplier: 3},
		{MinimumSpend: 500, Multiplier: 2},
		{MinimumSpend: 200, Multiplier: 1.5},
	}

	next, ok := NextThreshold(300, tiers)
	assert.True(t, ok)
	assert.Equal(t, 500.0, next.MinimumSpend)
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 12, cfg.Points(125))
	_, ok := cfg.Next(125)
	assert.False(t, ok)
}
