package service

import (
	"testing"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *domain.Footprint {
	return &domain.Footprint{Value: v, Unit: CanonicalUnit}
}

func TestSeekAlternatives(t *testing.T) {
	t.Run("HighAssessment", func(t *testing.T) {
		a := &domain.Assessment{Value: 5, High: true}
		assert.True(t, seekAlternatives(domain.Product{}, a))
	})

	t.Run("LowAssessment", func(t *testing.T) {
		a := &domain.Assessment{Value: 0.5}
		assert.False(t, seekAlternatives(domain.Product{EcoGrade: domain.GradeE}, a))
	})

	t.Run("NoAssessmentWorseThanA", func(t *testing.T) {
		p := domain.Product{EcoGrade: domain.GradeC}
		assert.True(t, seekAlternatives(p, nil))
	})

	t.Run("NoAssessmentGradeA", func(t *testing.T) {
		p := domain.Product{EcoGrade: domain.GradeA}
		assert.False(t, seekAlternatives(p, nil))
	})
}

func TestRankAlternatives(t *testing.T) {
	orig := domain.Product{
		GTIN:      "5449000000996",
		Name:      "Coca-Cola",
		Category:  "Sodas",
		EcoGrade:  domain.GradeE,
		Footprint: fp(5.3),
	}

	t.Run("FilterRankTruncate", func(t *testing.T) {
		candidates := []domain.Product{
			{GTIN: "1", Name: "Zed Soda", EcoGrade: domain.GradeB, Footprint: fp(1.0)},
			{GTIN: "2", Name: "Acme Soda", EcoGrade: domain.GradeB, Footprint: fp(1.0)},
			{GTIN: "3", Name: "Spring Water", EcoGrade: domain.GradeA, Footprint: fp(0.2)},
			{GTIN: "4", Name: "Other Cola", EcoGrade: domain.GradeE, Footprint: fp(5.3)},
			{GTIN: "5449000000996", Name: "Coca-Cola", EcoGrade: domain.GradeE, Footprint: fp(5.3)},
			{GTIN: "5", Name: "Cheap Cola", EcoGrade: domain.GradeC, Footprint: fp(4.0)},
		}

		alts := rankAlternatives(orig, candidates, 3)
		require.Len(t, alts, 3)

		// GradeA first, then the two GradeB tie-broken by name.
		assert.Equal(t, "3", alts[0].GTIN)
		assert.Equal(t, "2", alts[1].GTIN)
		assert.Equal(t, "1", alts[2].GTIN)

		for _, alt := range alts {
			assert.NotEqual(t, orig.GTIN, alt.GTIN)
			assert.True(t, alt.EcoGrade.Better(orig.EcoGrade))
		}
	})

	t.Run("FootprintFallbackWithoutGrades", func(t *testing.T) {
		ungraded := domain.Product{GTIN: "10", Name: "Bulk Cola", Footprint: fp(6.0)}
		candidates := []domain.Product{
			{GTIN: "11", Name: "Lean Cola", Footprint: fp(2.0)},
			{GTIN: "12", Name: "Heavy Cola", Footprint: fp(7.0)},
		}

		alts := rankAlternatives(ungraded, candidates, 3)
		require.Len(t, alts, 1)
		assert.Equal(t, "11", alts[0].GTIN)
	})

	t.Run("NothingBetterThanGradeA", func(t *testing.T) {
		best := domain.Product{GTIN: "20", Name: "Oat Drink", EcoGrade: domain.GradeA}
		candidates := []domain.Product{
			{GTIN: "21", Name: "Other Oat", EcoGrade: domain.GradeA},
			{GTIN: "22", Name: "Milk", EcoGrade: domain.GradeC},
		}

		alts := rankAlternatives(best, candidates, 3)
		assert.Empty(t, alts)
	})

	t.Run("FootprintBreaksGradeTie", func(t *testing.T) {
		candidates := []domain.Product{
			{GTIN: "31", Name: "B Soda", EcoGrade: domain.GradeB, Footprint: fp(1.5)},
			{GTIN: "32", Name: "A Soda", EcoGrade: domain.GradeB, Footprint: fp(0.5)},
		}

		alts := rankAlternatives(orig, candidates, 3)
		require.Len(t, alts, 2)
		assert.Equal(t, "32", alts[0].GTIN)
		assert.Equal(t, "31", alts[1].GTIN)
	})
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, "Sodas", primaryCategory("Sodas, Beverages, Sugary drinks"))
	assert.Equal(t, "Sodas", primaryCategory("Sodas"))
	assert.Equal(t, "", primaryCategory(""))
}
