package catalog

import "strconv"

// Open Food Facts payloads. Numeric fields arrive as numbers or strings
// depending on how the entry was contributed, so leaf values are kept
// loose and coerced; a malformed field counts as absent, never as a
// failed lookup.
type (
	productResponse struct {
		Status  any         `json:"status"`
		Product *offProduct `json:"product"`
	}

	searchResponse struct {
		Products []offProduct `json:"products"`
	}

	offProduct struct {
		Code               string        `json:"code"`
		ProductName        string        `json:"product_name"`
		ProductNameEn      string        `json:"product_name_en"`
		Brands             string        `json:"brands"`
		Categories         string        `json:"categories"`
		ImageFrontURL      string        `json:"image_front_url"`
		ImageFrontSmallURL string        `json:"image_front_small_url"`
		IngredientsTextEn  string        `json:"ingredients_text_en"`
		NutriscoreGrade    string        `json:"nutriscore_grade"`
		EcoscoreGrade      string        `json:"ecoscore_grade"`
		PackagingTags      []string      `json:"packaging_tags"`
		EcoscoreData       *ecoscoreData `json:"ecoscore_data"`
		Nutriments         *nutriments   `json:"nutriments"`
	}

	ecoscoreData struct {
		Agribalyse *agribalyse `json:"agribalyse"`
	}

	agribalyse struct {
		CO2Total any `json:"co2_total"`
	}

	nutriments struct {
		CarbonFootprint100g any `json:"carbon-footprint_100g"`
	}
)

func (r productResponse) found() bool {
	if r.Product == nil {
		return false
	}
	v, ok := floatValue(r.Status)
	return !ok || v != 0
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
