package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/niksmo/ecoscan/internal/core/domain"
)

type ruleInput struct {
	product    domain.Product
	assessment *domain.Assessment
}

// A rule pairs a predicate with a recommendation template. Rules fire
// independently; the engine collects every match.
type rule struct {
	match func(ruleInput) bool
	build func(ruleInput) domain.Recommendation
}

var rules = []rule{
	{
		match: func(in ruleInput) bool {
			return in.assessment != nil && in.assessment.High
		},
		build: func(in ruleInput) domain.Recommendation {
			return domain.Recommendation{
				Icon: "🌍",
				Text: fmt.Sprintf(
					"High carbon footprint (%.2f %s). Consider eco-friendly alternatives below.",
					in.assessment.Value, in.assessment.Unit,
				),
				Priority: domain.PriorityHigh,
			}
		},
	},
	{
		match: func(in ruleInput) bool {
			g := in.product.EcoGrade
			return g == domain.GradeD || g == domain.GradeE
		},
		build: func(in ruleInput) domain.Recommendation {
			return domain.Recommendation{
				Icon:     "🌱",
				Text:     "Low environmental score - look for products with better eco ratings",
				Priority: domain.PriorityHigh,
			}
		},
	},
	{
		match: func(in ruleInput) bool {
			g := in.product.EcoGrade
			return g == domain.GradeA || g == domain.GradeB
		},
		build: func(in ruleInput) domain.Recommendation {
			return domain.Recommendation{
				Icon:     "✅",
				Text:     "Good environmental score! This product has lower environmental impact",
				Priority: domain.PriorityLow,
			}
		},
	},
	{
		match: func(in ruleInput) bool {
			g := in.product.NutriGrade
			return g == domain.GradeD || g == domain.GradeE
		},
		build: func(in ruleInput) domain.Recommendation {
			return domain.Recommendation{
				Icon: "❤️",
				Text: fmt.Sprintf(
					"Nutrition score is %s - consider healthier options",
					strings.ToUpper(in.product.NutriGrade.String()),
				),
				Priority: domain.PriorityMedium,
			}
		},
	},
	{
		match: func(in ruleInput) bool {
			for _, tag := range in.product.PackagingTags {
				if strings.Contains(strings.ToLower(tag), "plastic") {
					return true
				}
			}
			return false
		},
		build: func(in ruleInput) domain.Recommendation {
			return domain.Recommendation{
				Icon:     "♻️",
				Text:     "Contains plastic packaging - recycle properly or choose alternatives with less plastic",
				Priority: domain.PriorityMedium,
			}
		},
	},
}

// recommend evaluates the rule table in order and returns every match,
// stably sorted high -> medium -> low. When nothing fires but an
// assessment exists, a single low-priority affirming entry is emitted;
// with no assessment either, the empty list stands.
func recommend(p domain.Product, a *domain.Assessment) []domain.Recommendation {
	in := ruleInput{product: p, assessment: a}

	var rs []domain.Recommendation
	for _, r := range rules {
		if r.match(in) {
			rs = append(rs, r.build(in))
		}
	}

	if len(rs) == 0 && a != nil {
		rs = append(rs, domain.Recommendation{
			Icon:     "✅",
			Text:     "This product has acceptable sustainability metrics",
			Priority: domain.PriorityLow,
		})
	}

	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Priority < rs[j].Priority
	})

	return rs
}
