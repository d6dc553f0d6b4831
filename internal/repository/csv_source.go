package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"AvoDash/internal/domain/models"
	domrepo "AvoDash/internal/domain/repository"
	applogger "AvoDash/pkg/logger"
	"AvoDash/pkg/util"

	"github.com/shopspring/decimal"
)

// Column names in the avocado CSV export. Other columns are ignored.
const (
	ColDate         = "Date"
	ColAveragePrice = "AveragePrice"
	ColTotalVolume  = "Total Volume"
	ColType         = "type"
	ColRegion       = "region"
)

var _ domrepo.RecordSource = (*CSVSource)(nil)

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	path       string
	dateFormat string
	l          *applogger.Logger
}

func NewCSVSource(path, dateFormat string) *CSVSource {
	if dateFormat == "" {
		dateFormat = util.DateLayout
	}
	return &CSVSource{path: path, dateFormat: dateFormat}
}

// SetLogger injects a structured logger.
func (s *CSVSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CSVSource) Name() string { return "csv:" + s.path }

func (s *CSVSource) Load(ctx context.Context) ([]models.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return s.Read(ctx, f)
}

// Read parses CSV content from r. It aborts on the first malformed row.
func (s *CSVSource) Read(ctx context.Context, r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv header: empty input")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	out := make([]models.Record, 0, 1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := s.parseRow(row, idx)
		if err != nil {
			if s.l != nil {
				s.l.Error("csv row rejected",
					applogger.String("path", s.path),
					applogger.Int("line", line),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, rec)
	}

	if s.l != nil {
		s.l.Debug("csv parsed", applogger.String("path", s.path), applogger.Int("rows", len(out)))
	}
	return out, nil
}

type columns struct {
	date, price, volume, typ, region int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	find := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", domrepo.ErrMissingColumn, name)
		}
		return i, nil
	}

	var c columns
	var err error
	if c.date, err = find(ColDate); err != nil {
		return c, err
	}
	if c.price, err = find(ColAveragePrice); err != nil {
		return c, err
	}
	if c.volume, err = find(ColTotalVolume); err != nil {
		return c, err
	}
	if c.typ, err = find(ColType); err != nil {
		return c, err
	}
	if c.region, err = find(ColRegion); err != nil {
		return c, err
	}
	return c, nil
}

func (s *CSVSource) parseRow(row []string, c columns) (models.Record, error) {
	date, err := util.ParseDate(strings.TrimSpace(row[c.date]), s.dateFormat)
	if err != nil {
		return models.Record{}, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[c.price]))
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", ColAveragePrice, err)
	}
	volume, err := decimal.NewFromString(strings.TrimSpace(row[c.volume]))
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", ColTotalVolume, err)
	}
	return models.Record{
		Date:         date,
		Region:       strings.Clone(row[c.region]),
		Type:         strings.Clone(row[c.typ]),
		AveragePrice: price,
		TotalVolume:  volume,
	}, nil
}
