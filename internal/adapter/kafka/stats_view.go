package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/ecoscan/internal/core/port"
)

var _ port.CategoryStatsReader = (*ScanStatsView)(nil)

// A ScanStatsView reads the per-category counters materialized by
// [ScanStatsProcessor].
type ScanStatsView struct {
	gv *goka.View
}

func NewScanStatsView(
	seedBrokers []string, group string,
) (*ScanStatsView, error) {
	const op = "NewScanStatsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		StatsValueCodec{},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ScanStatsView{gv}, nil
}

func (v *ScanStatsView) Run(ctx context.Context) {
	const op = "ScanStatsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *ScanStatsView) CategoryStats(
	category string,
) (port.CategoryStats, bool, error) {
	const op = "ScanStatsView.CategoryStats"

	value, err := v.gv.Get(category)
	if err != nil {
		return port.CategoryStats{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if value == nil {
		return port.CategoryStats{}, false, nil
	}

	sv, ok := value.(StatsValue)
	if !ok {
		return port.CategoryStats{}, false, fmt.Errorf(
			"%s: unexpected value type %T", op, value,
		)
	}

	return port.CategoryStats{
		Category:   category,
		Scans:      sv.Scans,
		HighCarbon: sv.HighCarbon,
	}, true, nil
}
