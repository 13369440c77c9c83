package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
	"github.com/niksmo/ecoscan/pkg/retry"
)

var _ port.ProductScanner = (*Service)(nil)
var _ port.ProductResolver = (*Service)(nil)

const (
	// lookupAttempts bounds the catalog lookup: the initial call plus
	// one retry on a transient failure, per the orchestrator contract.
	lookupAttempts = 2
	lookupBackoff  = 200 * time.Millisecond

	// searchPageSize is how many same-category candidates are requested
	// before filtering and truncation.
	searchPageSize = 5
)

type Config struct {
	Decoder         port.BarcodeDecoder
	Catalog         port.CatalogProvider
	Events          port.ScanEventsProducer
	History         port.ScansStorage
	CarbonThreshold float64
	MaxAlternatives int
}

// A Service runs the scan-to-recommendation pipeline:
// decode -> lookup -> classify -> recommend -> select alternatives.
// Every call is self-contained; the only shared state is the catalog
// client's connection pool.
type Service struct {
	decoder         port.BarcodeDecoder
	catalog         port.CatalogProvider
	events          port.ScanEventsProducer
	history         port.ScansStorage
	carbonThreshold float64
	maxAlternatives int
}

func New(cfg Config) *Service {
	return &Service{
		decoder:         cfg.Decoder,
		catalog:         cfg.Catalog,
		events:          cfg.Events,
		history:         cfg.History,
		carbonThreshold: cfg.CarbonThreshold,
		maxAlternatives: cfg.MaxAlternatives,
	}
}

func (s *Service) ScanImage(ctx context.Context, image []byte) (domain.ScanReport, error) {
	const op = "Service.ScanImage"

	if err := ctx.Err(); err != nil {
		return domain.ScanReport{}, fmt.Errorf("%s: %w", op, err)
	}

	gtin, err := s.decoder.Decode(image)
	if err != nil {
		if errors.Is(err, domain.ErrNoBarcode) {
			return domain.ScanReport{
				Status:  domain.StatusNotFound,
				Message: "No barcode detected. Please ensure the barcode is clearly visible.",
			}, nil
		}
		return domain.ScanReport{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.resolve(ctx, gtin)
}

func (s *Service) ResolveGTIN(ctx context.Context, gtin string) (domain.ScanReport, error) {
	const op = "Service.ResolveGTIN"

	if err := ctx.Err(); err != nil {
		return domain.ScanReport{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.resolve(ctx, gtin)
}

func (s *Service) resolve(ctx context.Context, gtin string) (domain.ScanReport, error) {
	const op = "Service.resolve"
	log := slog.With("op", op, "gtin", gtin)

	product, err := s.lookup(ctx, gtin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domain.ScanReport{
				Status:  domain.StatusNotFound,
				GTIN:    gtin,
				Message: fmt.Sprintf("Product with barcode %s not found in catalog.", gtin),
			}, nil
		case errors.Is(err, domain.ErrUnavailable):
			log.Warn("catalog unavailable after retry", "err", err)
			return domain.ScanReport{
				Status:  domain.StatusError,
				GTIN:    gtin,
				Message: "Product catalog is temporarily unavailable. Please try again later.",
			}, nil
		}
		return domain.ScanReport{}, fmt.Errorf("%s: %w", op, err)
	}

	assessment := classifyFootprint(product, s.carbonThreshold)
	recommendations := recommend(product, assessment)
	alternatives := s.fetchAlternatives(ctx, product, assessment)

	report := domain.ScanReport{
		Status:          domain.StatusSuccess,
		GTIN:            gtin,
		Product:         product,
		Assessment:      assessment,
		Recommendations: recommendations,
		Alternatives:    alternatives,
	}

	s.recordScan(ctx, report)

	return report, nil
}

// lookup wraps the catalog call in the bounded retry budget: at most
// one extra attempt, and only for transient failures.
func (s *Service) lookup(ctx context.Context, gtin string) (domain.Product, error) {
	cfg := retry.Config{
		MaxAttempts: lookupAttempts,
		Backoff:     retry.FixedBackoff(lookupBackoff),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, domain.ErrUnavailable)
		},
	}

	return retry.DoWithResult(ctx, cfg, func() (domain.Product, error) {
		return s.catalog.Product(ctx, gtin)
	})
}

// fetchAlternatives never fails the scan: any catalog trouble here is
// logged and surfaces as an empty list.
func (s *Service) fetchAlternatives(
	ctx context.Context, p domain.Product, a *domain.Assessment,
) []domain.Alternative {
	const op = "Service.fetchAlternatives"
	log := slog.With("op", op, "gtin", p.GTIN)

	if !seekAlternatives(p, a) {
		return nil
	}

	category := primaryCategory(p.Category)
	if category == "" {
		return nil
	}

	candidates, err := s.catalog.CategoryProducts(ctx, category, searchPageSize)
	if err != nil {
		log.Warn("failed to fetch alternatives", "err", err)
		return nil
	}

	return rankAlternatives(p, candidates, s.maxAlternatives)
}

// recordScan publishes the scan event and appends it to history.
// Both are best-effort: a broker or database hiccup never changes the
// caller's result.
func (s *Service) recordScan(ctx context.Context, r domain.ScanReport) {
	const op = "Service.recordScan"
	log := slog.With("op", op, "gtin", r.GTIN)

	e := domain.ScanEvent{
		GTIN:      r.GTIN,
		Name:      r.Product.Name,
		Category:  primaryCategory(r.Product.Category),
		EcoGrade:  r.Product.EcoGrade,
		Footprint: r.Assessment,
		ScannedAt: time.Now().UTC(),
	}
	if r.Assessment != nil {
		e.HighCarbon = r.Assessment.High
	}

	if s.events != nil {
		if err := s.events.ProduceScan(ctx, e); err != nil {
			log.Warn("failed to produce scan event", "err", err)
		}
	}

	if s.history != nil {
		if err := s.history.StoreScan(ctx, e); err != nil {
			log.Warn("failed to store scan history", "err", err)
		}
	}
}
