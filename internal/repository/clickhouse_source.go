package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"AvoDash/internal/domain/models"
	domrepo "AvoDash/internal/domain/repository"
	applogger "AvoDash/pkg/logger"
	"AvoDash/pkg/util"

	"github.com/shopspring/decimal"
)

var _ domrepo.RecordSource = (*ClickHouseSource)(nil)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ClickHouseSource reads records from a ClickHouse table with columns
// date, region, type, average_price, total_volume.
type ClickHouseSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewClickHouseSource(db *sql.DB, table string) (*ClickHouseSource, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &ClickHouseSource{db: db, table: table}, nil
}

// SetLogger injects a structured logger.
func (s *ClickHouseSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseSource) Name() string { return "clickhouse:" + s.table }

func (s *ClickHouseSource) Load(ctx context.Context) ([]models.Record, error) {
	start := time.Now()
	const qtpl = `
        SELECT date, region, type, toString(average_price), toString(total_volume)
        FROM %s
        ORDER BY date ASC
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(qtpl, s.table))
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse load query error", applogger.String("table", s.table), applogger.Error(err))
		}
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := make([]models.Record, 0, 1024)
	for rows.Next() {
		var (
			date          time.Time
			region, typ   string
			price, volume string
		)
		if err := rows.Scan(&date, &region, &typ, &price, &volume); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := toRecord(date, region, typ, price, volume)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse load ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func toRecord(date time.Time, region, typ, price, volume string) (models.Record, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return models.Record{}, fmt.Errorf("average_price: %w", err)
	}
	v, err := decimal.NewFromString(volume)
	if err != nil {
		return models.Record{}, fmt.Errorf("total_volume: %w", err)
	}
	return models.Record{
		Date:         util.TruncateDay(date),
		Region:       region,
		Type:         typ,
		AveragePrice: p,
		TotalVolume:  v,
	}, nil
}
