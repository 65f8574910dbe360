package nscp

import (
	"fmt"
	"math"
	"strings"
)

// Load case tags carried by beam loads
const (
	CaseDead       = "D"
	CaseLive       = "L"
	CaseRoof       = "Lr"
	CaseWind       = "W"
	CaseEarthquake = "E"
	CaseRain       = "R"
)

// Cases lists the load case tags in display order
var Cases = []string{CaseDead, CaseLive, CaseRoof, CaseWind, CaseEarthquake, CaseRain}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for gravity-only beams
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the load factor for a case tag. Tags are matched without
// regard to case; an unknown tag returns false.
func (lc LoadCombination) Factor(loadCase string) (float64, bool) {
	switch {
	case strings.EqualFold(loadCase, CaseDead):
		return lc.Dead, true
	case strings.EqualFold(loadCase, CaseLive):
		return lc.Live, true
	case strings.EqualFold(loadCase, CaseRoof):
		return lc.Roof, true
	case strings.EqualFold(loadCase, CaseWind):
		return lc.Wind, true
	case strings.EqualFold(loadCase, CaseEarthquake):
		return lc.Earthquake, true
	case strings.EqualFold(loadCase, CaseRain):
		return lc.Rain, true
	}
	return 0, false
}

// Lookup finds a combination by ID
func Lookup(id string, combinations []LoadCombination) (LoadCombination, error) {
	for _, lc := range combinations {
		if lc.ID == strings.TrimSpace(id) {
			return lc, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
}

// Governing evaluates every combination and returns the one with the largest
// magnitude. The first error stops the search.
func Governing(combinations []LoadCombination, evaluate func(LoadCombination) (float64, error)) (LoadCombination, float64, error) {
	var governing LoadCombination
	var maxValue float64

	for i, combo := range combinations {
		v, err := evaluate(combo)
		if err != nil {
			return LoadCombination{}, 0, fmt.Errorf("combination %s (%s): %w", combo.ID, combo.Description, err)
		}
		if i == 0 || math.Abs(v) > math.Abs(maxValue) {
			maxValue = v
			governing = combo
		}
	}

	return governing, maxValue, nil
}
