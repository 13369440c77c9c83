package httphandler

import "github.com/niksmo/ecoscan/internal/core/domain"

const catalogSource = "OpenFoodFacts"

type (
	Recommendation struct {
		Icon     string `json:"icon"`
		Text     string `json:"text"`
		Priority string `json:"priority"`
	}

	Alternative struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		EcoScore string `json:"eco_score"`
		ImageURL string `json:"image_url,omitempty"`
		GTIN     string `json:"gtin"`
	}

	// ScanResponse is the flat envelope returned by every pipeline
	// endpoint. is_high_carbon travels together with carbon_footprint:
	// neither appears without an assessment.
	ScanResponse struct {
		Status              string           `json:"status"`
		GTIN                string           `json:"gtin,omitempty"`
		Name                string           `json:"name,omitempty"`
		Brand               string           `json:"brand,omitempty"`
		ImageURL            string           `json:"image_url,omitempty"`
		Category            string           `json:"category,omitempty"`
		IngredientsText     string           `json:"ingredients_text,omitempty"`
		NutriScore          string           `json:"nutri_score,omitempty"`
		EcoScore            string           `json:"eco_score,omitempty"`
		CarbonFootprint     *float64         `json:"carbon_footprint,omitempty"`
		CarbonFootprintUnit string           `json:"carbon_footprint_unit,omitempty"`
		IsHighCarbon        *bool            `json:"is_high_carbon,omitempty"`
		Recommendations     []Recommendation `json:"recommendations"`
		Alternatives        []Alternative    `json:"alternatives"`
		Source              string           `json:"source,omitempty"`
		Message             string           `json:"message,omitempty"`
	}

	StatsResponse struct {
		Category   string `json:"category"`
		Scans      int64  `json:"scans"`
		HighCarbon int64  `json:"high_carbon"`
	}
)

func toResponse(r domain.ScanReport) ScanResponse {
	res := ScanResponse{
		Status:          r.Status.String(),
		GTIN:            r.GTIN,
		Message:         r.Message,
		Recommendations: []Recommendation{},
		Alternatives:    []Alternative{},
	}

	if r.Status != domain.StatusSuccess {
		return res
	}

	p := r.Product
	res.Name = p.Name
	res.Brand = p.Brand
	res.ImageURL = p.ImageURL
	res.Category = p.Category
	res.IngredientsText = p.Ingredients
	res.NutriScore = p.NutriGrade.String()
	res.EcoScore = p.EcoGrade.String()
	res.Source = catalogSource

	if a := r.Assessment; a != nil {
		value, high := a.Value, a.High
		res.CarbonFootprint = &value
		res.CarbonFootprintUnit = a.Unit
		res.IsHighCarbon = &high
	}

	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, Recommendation{
			Icon:     rec.Icon,
			Text:     rec.Text,
			Priority: rec.Priority.String(),
		})
	}

	for _, alt := range r.Alternatives {
		res.Alternatives = append(res.Alternatives, Alternative{
			Name:     alt.Name,
			Brand:    alt.Brand,
			EcoScore: alt.EcoGrade.String(),
			ImageURL: alt.ImageURL,
			GTIN:     alt.GTIN,
		})
	}

	return res
}
