package service

import (
	"sort"
	"testing"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	t.Run("HighFootprintBadGrades", func(t *testing.T) {
		p := domain.Product{
			EcoGrade:      domain.GradeE,
			NutriGrade:    domain.GradeD,
			PackagingTags: []string{"en:plastic-bottle"},
		}
		a := &domain.Assessment{Value: 5.3, Unit: CanonicalUnit, High: true}

		rs := recommend(p, a)
		require.Len(t, rs, 4)

		assert.Equal(t, domain.PriorityHigh, rs[0].Priority)
		assert.Contains(t, rs[0].Text, "5.30 kg CO2e/kg")
		assert.Equal(t, domain.PriorityHigh, rs[1].Priority)
		assert.Equal(t, domain.PriorityMedium, rs[2].Priority)
		assert.Equal(t, domain.PriorityMedium, rs[3].Priority)

		sorted := sort.SliceIsSorted(rs, func(i, j int) bool {
			return rs[i].Priority < rs[j].Priority
		})
		assert.True(t, sorted)
	})

	t.Run("TopTierGrade", func(t *testing.T) {
		p := domain.Product{EcoGrade: domain.GradeA}
		rs := recommend(p, nil)
		require.Len(t, rs, 1)
		assert.Equal(t, domain.PriorityLow, rs[0].Priority)
		assert.Contains(t, rs[0].Text, "Good environmental score")
	})

	t.Run("NothingFiredWithAssessment", func(t *testing.T) {
		p := domain.Product{EcoGrade: domain.GradeC}
		a := &domain.Assessment{Value: 0.4, Unit: CanonicalUnit}
		rs := recommend(p, a)
		require.Len(t, rs, 1)
		assert.Equal(t, domain.PriorityLow, rs[0].Priority)
		assert.Contains(t, rs[0].Text, "acceptable")
	})

	t.Run("NothingFiredNoAssessment", func(t *testing.T) {
		rs := recommend(domain.Product{EcoGrade: domain.GradeC}, nil)
		assert.Empty(t, rs)
	})

	t.Run("NutritionGradeNamed", func(t *testing.T) {
		p := domain.Product{NutriGrade: domain.GradeE}
		rs := recommend(p, nil)
		require.Len(t, rs, 1)
		assert.Equal(t, domain.PriorityMedium, rs[0].Priority)
		assert.Contains(t, rs[0].Text, "E")
	})
}
