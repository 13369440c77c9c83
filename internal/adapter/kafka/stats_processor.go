package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/ecoscan/pkg/schema"
)

type ScanEventCodec struct {
	serde Serde
}

func NewScanEventCodec(s Serde) ScanEventCodec {
	return ScanEventCodec{s}
}

func (c ScanEventCodec) Encode(v any) ([]byte, error) {
	const op = "ScanEventCodec.Encode"
	if _, ok := v.(schema.ScanEventV1); !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidValueType)
	}
	return c.serde.Encode(v)
}

func (c ScanEventCodec) Decode(data []byte) (any, error) {
	const op = "ScanEventCodec.Decode"
	var s schema.ScanEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, err
}

// A StatsValue is the per-category counter state kept in the group table.
type StatsValue struct {
	Scans      int64 `json:"scans"`
	HighCarbon int64 `json:"high_carbon"`
}

type StatsValueCodec struct{}

func (StatsValueCodec) Encode(v any) ([]byte, error) {
	const op = "StatsValueCodec.Encode"
	sv, ok := v.(StatsValue)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidValueType)
	}
	return json.Marshal(sv)
}

func (StatsValueCodec) Decode(data []byte) (any, error) {
	const op = "StatsValueCodec.Decode"
	var sv StatsValue
	if err := json.Unmarshal(data, &sv); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sv, nil
}

// A ScanStatsProcessor folds scan events into per-category counters.
// Events arrive keyed by category, so the group table key is the
// category name.
type ScanStatsProcessor struct {
	gp *goka.Processor
}

func NewScanStatsProcessor(
	seedBrokers []string, stream string, group string, scanEventSerde Serde,
) (ScanStatsProcessor, error) {
	const op = "NewScanStatsProcessor"
	p := ScanStatsProcessor{}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), NewScanEventCodec(scanEventSerde), p.processFn),
		goka.Persist(StatsValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return ScanStatsProcessor{}, fmt.Errorf("%s: %w", op, err)
	}

	return ScanStatsProcessor{gp}, nil
}

func (p ScanStatsProcessor) Run(ctx context.Context) {
	const op = "ScanStatsProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p ScanStatsProcessor) Close() {
	const op = "ScanStatsProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (ScanStatsProcessor) processFn(ctx goka.Context, msg any) {
	e, ok := msg.(schema.ScanEventV1)
	if !ok {
		return
	}

	var sv StatsValue
	if v := ctx.Value(); v != nil {
		sv = v.(StatsValue)
	}

	sv.Scans++
	if e.HighCarbon {
		sv.HighCarbon++
	}
	ctx.SetValue(sv)
}
