package service

import (
	"sort"
	"strings"

	"github.com/niksmo/ecoscan/internal/core/domain"
)

const unknownGradeRank = int(domain.GradeE) + 1

// seekAlternatives is the trigger policy: alternatives are sought for a
// high-footprint product, and for a product without any assessment as
// long as its eco grade leaves room for improvement. Eco grade is an
// independent signal, so absence of a footprint does not by itself
// suppress the search.
func seekAlternatives(p domain.Product, a *domain.Assessment) bool {
	if a != nil {
		return a.High
	}
	return p.EcoGrade != domain.GradeA
}

// primaryCategory picks the first entry of the comma-separated catalog
// category list.
func primaryCategory(category string) string {
	head, _, _ := strings.Cut(category, ",")
	return strings.TrimSpace(head)
}

// qualifies keeps candidates with a strictly better eco grade; the
// footprint comparison steps in only when either grade is unknown.
func qualifies(orig, cand domain.Product) bool {
	if cand.GTIN == "" || cand.GTIN == orig.GTIN {
		return false
	}

	if cand.EcoGrade.Known() && orig.EcoGrade.Known() {
		return cand.EcoGrade.Better(orig.EcoGrade)
	}

	cv, cok := normalizeFootprint(cand.Footprint)
	ov, ook := normalizeFootprint(orig.Footprint)
	return cok && ook && cv < ov
}

// rankAlternatives filters candidates to strictly lower-impact products
// and orders them deterministically: eco grade ascending (unknown last),
// then footprint ascending (absent last), then name.
func rankAlternatives(orig domain.Product, candidates []domain.Product, maxResults int) []domain.Alternative {
	var kept []domain.Product
	for _, cand := range candidates {
		if qualifies(orig, cand) {
			kept = append(kept, cand)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		gi, gj := gradeRank(kept[i].EcoGrade), gradeRank(kept[j].EcoGrade)
		if gi != gj {
			return gi < gj
		}

		fi, oki := normalizeFootprint(kept[i].Footprint)
		fj, okj := normalizeFootprint(kept[j].Footprint)
		switch {
		case oki && okj && fi != fj:
			return fi < fj
		case oki != okj:
			return oki
		}

		return kept[i].Name < kept[j].Name
	})

	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}

	alts := make([]domain.Alternative, 0, len(kept))
	for _, p := range kept {
		alts = append(alts, domain.Alternative{
			GTIN:     p.GTIN,
			Name:     p.Name,
			Brand:    p.Brand,
			EcoGrade: p.EcoGrade,
			ImageURL: p.ImageURL,
		})
	}
	return alts
}

func gradeRank(g domain.Grade) int {
	if !g.Known() {
		return unknownGradeRank
	}
	return int(g)
}
