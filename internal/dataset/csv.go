package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ratecast/internal/domain"
)

var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/2006",
	"Jan-2006",
	"January 2006",
}

// Source yields a freshly loaded dataset on every call.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// CSVSource loads the monthly table from a CSV file on disk.
type CSVSource struct {
	path   string
	logger zerolog.Logger
}

func NewCSVSource(path string, logger zerolog.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger.With().Str("component", "dataset").Logger()}
}

func (s *CSVSource) Path() string { return s.path }

func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	return LoadCSV(s.logger.WithContext(ctx), s.path)
}

// LoadCSV opens path and parses it with Read.
func LoadCSV(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	ds, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

// Read parses a headered CSV table. Columns are located by name. Rows with
// an unparseable month or a missing, non-numeric or non-finite value are
// dropped; the survivors are sorted by month.
func Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	log := zerolog.Ctx(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}
	for name, i := range cols {
		if _, known := domain.LookupField(name); !known && name != domain.FieldMonth {
			log.Debug().Str("column", name).Int("index", i).Msg("ignoring unknown column")
		}
	}

	fields := domain.Fields()
	var (
		obs     []domain.Observation
		dropped int
		line    int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		line++

		o, ok := parseRow(record, cols, fields)
		if !ok {
			dropped++
			continue
		}
		obs = append(obs, o)
	}

	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("rows", line).Msg("dropped incomplete rows")
	}

	ds, err := New(obs)
	if err != nil {
		return nil, err
	}
	ds.dropped = dropped
	return ds, nil
}

func locateColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	required := append([]string{domain.FieldMonth}, domain.FieldNames()...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, fields []domain.Field) (domain.Observation, bool) {
	var o domain.Observation

	month, ok := parseMonth(cell(record, cols[domain.FieldMonth]))
	if !ok {
		return o, false
	}
	o.Month = month

	for _, f := range fields {
		raw := cell(record, cols[f.Name])
		if raw == "" {
			return o, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return o, false
		}
		o, _ = o.With(f.Name, v)
	}
	return o, o.Complete()
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseMonth(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
