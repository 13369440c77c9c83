package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
)

var _ port.CatalogProvider = (*Client)(nil)

type Config struct {
	// ProductURL is the product endpoint prefix, the GTIN is appended.
	ProductURL string
	// SearchURL is the category search endpoint.
	SearchURL string
	// UserAgent identifies this client to the catalog operator, as its
	// usage terms require.
	UserAgent string
	Timeout   time.Duration
}

// A Client is the read-only Open Food Facts catalog adapter. The
// underlying [http.Client] pool is safe for concurrent use; no request
// shares any other state. No retries happen here - the retry budget
// belongs to the core service.
type Client struct {
	httpClient *http.Client
	productURL string
	searchURL  string
	userAgent  string
}

func New(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		productURL: strings.TrimRight(cfg.ProductURL, "/") + "/",
		searchURL:  cfg.SearchURL,
		userAgent:  cfg.UserAgent,
	}
}

// Product resolves a GTIN. [domain.ErrNotFound] is the business-valid
// "not cataloged" answer; [domain.ErrUnavailable] covers timeouts,
// connection failures, 5xx answers and undecodable bodies.
func (c *Client) Product(ctx context.Context, gtin string) (domain.Product, error) {
	const op = "catalog.Client.Product"

	var pr productResponse
	err := c.getJSON(ctx, c.productURL+url.PathEscape(gtin), &pr)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if !pr.found() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	return c.toDomain(gtin, *pr.Product), nil
}

// CategoryProducts queries the category search sorted by ecoscore.
// The catalog has no dedicated "alternatives" endpoint; callers filter
// and rank the returned page themselves.
func (c *Client) CategoryProducts(
	ctx context.Context, category string, limit int,
) ([]domain.Product, error) {
	const op = "catalog.Client.CategoryProducts"

	q := url.Values{}
	q.Set("action", "process")
	q.Set("tagtype_0", "categories")
	q.Set("tag_contains_0", "contains")
	q.Set("tag_0", category)
	q.Set("sort_by", "ecoscore_score")
	q.Set("page_size", strconv.Itoa(limit))
	q.Set("json", "1")

	var sr searchResponse
	err := c.getJSON(ctx, c.searchURL+"?"+q.Encode(), &sr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(sr.Products))
	for _, p := range sr.Products {
		ps = append(ps, c.toDomain(p.Code, p))
	}
	return ps, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

func (c *Client) toDomain(gtin string, p offProduct) domain.Product {
	if p.Code != "" {
		gtin = p.Code
	}

	name := p.ProductName
	if name == "" {
		name = p.ProductNameEn
	}

	imageURL := p.ImageFrontURL
	if imageURL == "" {
		imageURL = p.ImageFrontSmallURL
	}

	return domain.Product{
		GTIN:          gtin,
		Name:          name,
		Brand:         p.Brands,
		Category:      p.Categories,
		ImageURL:      imageURL,
		Ingredients:   p.IngredientsTextEn,
		NutriGrade:    domain.ParseGrade(p.NutriscoreGrade),
		EcoGrade:      domain.ParseGrade(p.EcoscoreGrade),
		PackagingTags: p.PackagingTags,
		Footprint:     footprint(p),
	}
}

// footprint prefers the agribalyse total (already kg CO2e/kg) and falls
// back to the per-100g nutriment. Missing or malformed values mean the
// product simply has no footprint.
func footprint(p offProduct) *domain.Footprint {
	if p.EcoscoreData != nil && p.EcoscoreData.Agribalyse != nil {
		if v, ok := floatValue(p.EcoscoreData.Agribalyse.CO2Total); ok {
			return &domain.Footprint{Value: v, Unit: domain.UnitKgCO2ePerKg}
		}
	}

	if p.Nutriments != nil {
		if v, ok := floatValue(p.Nutriments.CarbonFootprint100g); ok {
			return &domain.Footprint{Value: v, Unit: domain.UnitGCO2ePer100g}
		}
	}

	return nil
}
