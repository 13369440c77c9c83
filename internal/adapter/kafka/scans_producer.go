package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
	"github.com/niksmo/ecoscan/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ScanEventsProducer = (*ScanEventsProducer)(nil)

// A ScanEventsProducer publishes completed scans to the event stream.
// Records are keyed by category so the stats processor folds them into
// per-category counters.
type ScanEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewScanEventsProducer(
	opts ...ProducerOpt,
) (ScanEventsProducer, error) {
	const op = "NewScanEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ScanEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ScanEventsProducer{options.cl, options.encoder}, nil
}

func (p ScanEventsProducer) Close() {
	const op = "ScanEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ScanEventsProducer) ProduceScan(
	ctx context.Context, e domain.ScanEvent,
) error {
	const op = "ScanEventsProducer.ProduceScan"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s := p.toSchema(e)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{Key: []byte(s.Category), Value: v}
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p ScanEventsProducer) toSchema(e domain.ScanEvent) (s schema.ScanEventV1) {
	s.GTIN = e.GTIN
	s.Name = e.Name
	s.Category = e.Category
	s.EcoGrade = e.EcoGrade.String()
	s.HighCarbon = e.HighCarbon
	s.ScannedAt = e.ScannedAt

	if e.Footprint != nil {
		v := e.Footprint.Value
		s.CarbonFootprint = &v
	}
	return s
}
