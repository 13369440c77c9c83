package domain

import "strings"

// A Grade is a letter score used by the catalog for both the
// environmental (eco) and nutritional scales. GradeA is the best,
// GradeE the worst, GradeUnknown means the catalog carries no grade.
type Grade int

const (
	GradeUnknown Grade = iota
	GradeA
	GradeB
	GradeC
	GradeD
	GradeE
)

func ParseGrade(s string) Grade {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return GradeA
	case "b":
		return GradeB
	case "c":
		return GradeC
	case "d":
		return GradeD
	case "e":
		return GradeE
	}
	return GradeUnknown
}

func (g Grade) String() string {
	switch g {
	case GradeA:
		return "a"
	case GradeB:
		return "b"
	case GradeC:
		return "c"
	case GradeD:
		return "d"
	case GradeE:
		return "e"
	}
	return ""
}

func (g Grade) Known() bool {
	return g != GradeUnknown
}

// Better reports whether g is a strictly better grade than other.
// Both grades must be known.
func (g Grade) Better(other Grade) bool {
	return g.Known() && other.Known() && g < other
}

// ValidGTIN checks the GS1 shape the catalog accepts: EAN-8, UPC-A,
// EAN-13 or GTIN-14, digits only.
func ValidGTIN(s string) bool {
	switch len(s) {
	case 8, 12, 13, 14:
	default:
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Footprint units. UnitKgCO2ePerKg is the canonical comparison unit;
// UnitGCO2ePer100g is the per-100g nutriment form some catalog entries
// report instead.
const (
	UnitKgCO2ePerKg  = "kg CO2e/kg"
	UnitGCO2ePer100g = "g CO2e/100g"
)

type (
	// A Product is the catalog record resolved by GTIN.
	// It is read-only: the pipeline derives from it and never writes back.
	Product struct {
		GTIN          string
		Name          string
		Brand         string
		Category      string
		ImageURL      string
		Ingredients   string
		NutriGrade    Grade
		EcoGrade      Grade
		PackagingTags []string
		Footprint     *Footprint
	}

	// A Footprint is the raw carbon-footprint figure as reported by the
	// catalog, before unit normalization.
	Footprint struct {
		Value float64
		Unit  string
	}
)

// An Assessment is the normalized classification of a product footprint.
// Value is always in kg CO2e per kg of product.
type Assessment struct {
	Value float64
	Unit  string
	High  bool
}

type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return ""
}

type Recommendation struct {
	Icon     string
	Text     string
	Priority Priority
}

// An Alternative is a lower-impact product from the same category.
type Alternative struct {
	GTIN     string
	Name     string
	Brand    string
	EcoGrade Grade
	ImageURL string
}
