package service

import (
	"math"

	"github.com/niksmo/ecoscan/internal/core/domain"
)

// CanonicalUnit is the unit every footprint is normalized to before
// comparison: kilograms of CO2 equivalent per kilogram of product.
// The per-100g form converts with factor 0.01 (g/100g -> kg/kg).
const (
	CanonicalUnit      = domain.UnitKgCO2ePerKg
	UnitGramsPer100g   = domain.UnitGCO2ePer100g
	gramsPer100gFactor = 0.01
)

// normalizeFootprint converts a raw catalog footprint to the canonical
// unit. Unknown units and malformed values count as absence.
func normalizeFootprint(fp *domain.Footprint) (float64, bool) {
	if fp == nil {
		return 0, false
	}

	v := fp.Value
	switch fp.Unit {
	case CanonicalUnit, "":
	case UnitGramsPer100g:
		v *= gramsPer100gFactor
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// classifyFootprint derives the normalized assessment for a product.
// A nil result is the expected outcome for products the catalog carries
// no usable footprint for, not an error. High is strict: a value exactly
// at the threshold is not high.
func classifyFootprint(p domain.Product, threshold float64) *domain.Assessment {
	v, ok := normalizeFootprint(p.Footprint)
	if !ok {
		return nil
	}

	return &domain.Assessment{
		Value: v,
		Unit:  CanonicalUnit,
		High:  v > threshold,
	}
}
