package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
)

var _ port.ScansStorage = (*ScansRepository)(nil)

// A ScansRepository persists the scan history.
type ScansRepository struct {
	sqldb sqldb
}

func NewScansRepository(sqldb sqldb) ScansRepository {
	return ScansRepository{sqldb}
}

func (r ScansRepository) StoreScan(
	ctx context.Context, e domain.ScanEvent,
) error {
	const op = "ScansRepository.StoreScan"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO scans (
			gtin, name, category, eco_grade,
			carbon_footprint, high_carbon, scanned_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	var footprint sql.NullFloat64
	if e.Footprint != nil {
		footprint = sql.NullFloat64{Float64: e.Footprint.Value, Valid: true}
	}

	_, err := r.sqldb.ExecContext(ctx,
		query,
		e.GTIN, e.Name, e.Category, e.EcoGrade.String(),
		footprint, e.HighCarbon, e.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	return nil
}
