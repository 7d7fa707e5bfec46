package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"sales-dashboard/internal/models"
)

const (
	batchSize  = 2000
	maxWorkers = 8
)

// The extract writes dates as "2/24/2003 0:00"; accept the date-only and
// ISO forms as well so exported data reloads cleanly.
var dateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02",
}

// Loader reads the sales CSV into a Dataset exactly once per path. The
// result is memoized for the process lifetime: repeated loads of the same
// path return the identical Dataset pointer without re-parsing.
type Loader struct {
	mu      sync.Mutex
	entries map[string]*loadEntry
	logger  *slog.Logger
}

type loadEntry struct {
	once sync.Once
	ds   *Dataset
	err  error
}

func NewLoader() *Loader {
	return &Loader{
		entries: make(map[string]*loadEntry),
		logger:  slog.Default(),
	}
}

// Load returns the memoized Dataset for path, parsing the file on first
// access. A load failure is memoized too: the file is a fixed bundled
// asset, so there is nothing to retry.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	l.mu.Lock()
	entry, ok := l.entries[path]
	if !ok {
		entry = &loadEntry{}
		l.entries[path] = entry
	}
	l.mu.Unlock()

	entry.once.Do(func() {
		start := time.Now()
		entry.ds, entry.err = l.loadFile(ctx, path)
		if entry.err == nil {
			l.logger.Info("sales data loaded",
				"path", path,
				"records", entry.ds.Len(),
				"duration", time.Since(start),
			)
		}
	})
	return entry.ds, entry.err
}

func (l *Loader) loadFile(ctx context.Context, path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer file.Close()

	// The bundled extract is Latin-1 encoded; decode to UTF-8 on the way in.
	return Parse(ctx, transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
}

// Parse reads UTF-8 CSV text with a header row into a Dataset. Rows with
// unparseable fields are skipped; a file yielding no valid rows is an error.
func Parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var raw [][]string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		raw = append(raw, record)
	}

	rows := make([]models.SalesRecord, len(raw))
	valid := make([]bool, len(raw))

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for start := 0; start < len(raw); start += batchSize {
		end := min(start+batchSize, len(raw))
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				rec, err := parseRecord(raw[i], idx)
				if err != nil {
					continue // skip malformed rows
				}
				rows[i] = rec
				valid[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact while preserving source order.
	kept := rows[:0]
	for i, ok := range valid {
		if ok {
			kept = append(kept, rows[i])
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no valid records found")
	}

	return NewDataset(kept), nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, name := range columns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %s", name)
		}
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int) (models.SalesRecord, error) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	orderNumber, err := strconv.Atoi(field("ORDERNUMBER"))
	if err != nil {
		return models.SalesRecord{}, err
	}

	quantity, err := strconv.Atoi(field("QUANTITYORDERED"))
	if err != nil || quantity < 0 {
		return models.SalesRecord{}, fmt.Errorf("quantity ordered: %q", field("QUANTITYORDERED"))
	}

	price, err := strconv.ParseFloat(field("PRICEEACH"), 64)
	if err != nil {
		return models.SalesRecord{}, err
	}

	lineNumber, err := strconv.Atoi(field("ORDERLINENUMBER"))
	if err != nil || lineNumber < 0 {
		return models.SalesRecord{}, fmt.Errorf("order line number: %q", field("ORDERLINENUMBER"))
	}

	sales, err := strconv.ParseFloat(field("SALES"), 64)
	if err != nil {
		return models.SalesRecord{}, err
	}

	orderDate, err := parseDate(field("ORDERDATE"))
	if err != nil {
		return models.SalesRecord{}, err
	}

	quarter, err := strconv.Atoi(field("QTR_ID"))
	if err != nil {
		return models.SalesRecord{}, err
	}

	return models.SalesRecord{
		OrderNumber:     orderNumber,
		QuantityOrdered: quantity,
		PriceEach:       price,
		OrderLineNumber: lineNumber,
		Sales:           sales,
		OrderDate:       orderDate,
		QuarterID:       quarter,
		Status:          field("STATUS"),
		ProductLine:     field("PRODUCTLINE"),
		ProductCode:     field("PRODUCTCODE"),
		CustomerName:    field("CUSTOMERNAME"),
		Country:         field("COUNTRY"),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
