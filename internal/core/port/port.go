package port

import (
	"context"

	"github.com/niksmo/ecoscan/internal/core/domain"
)

// Inbound ports: what the transport layer asks of the core.

type ProductScanner interface {
	ScanImage(ctx context.Context, image []byte) (domain.ScanReport, error)
}

type ProductResolver interface {
	ResolveGTIN(ctx context.Context, gtin string) (domain.ScanReport, error)
}

// Outbound ports: what the core asks of its collaborators.

type BarcodeDecoder interface {
	Decode(image []byte) (gtin string, err error)
}

type CatalogProvider interface {
	Product(ctx context.Context, gtin string) (domain.Product, error)
	CategoryProducts(ctx context.Context, category string, limit int) ([]domain.Product, error)
}

type ScanEventsProducer interface {
	ProduceScan(ctx context.Context, e domain.ScanEvent) error
}

type ScansStorage interface {
	StoreScan(ctx context.Context, e domain.ScanEvent) error
}

type CategoryStats struct {
	Category   string
	Scans      int64
	HighCarbon int64
}

type CategoryStatsReader interface {
	CategoryStats(category string) (CategoryStats, bool, error)
}
