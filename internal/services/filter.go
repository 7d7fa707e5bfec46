package services

import (
	"slices"
	"strconv"
	"time"

	"sales-dashboard/internal/models"
)

// Column identifies a filterable categorical dimension.
type Column string

const (
	ColumnProductLine Column = "PRODUCTLINE"
	ColumnCountry     Column = "COUNTRY"
	ColumnStatus      Column = "STATUS"
	ColumnQuarter     Column = "QTR_ID"
)

func (c Column) value(r models.SalesRecord) string {
	switch c {
	case ColumnProductLine:
		return r.ProductLine
	case ColumnCountry:
		return r.Country
	case ColumnStatus:
		return r.Status
	case ColumnQuarter:
		return strconv.Itoa(r.QuarterID)
	}
	return ""
}

// Criteria is one filter selection. An empty slice on any dimension means
// no restriction on that dimension; zero Start/End leave the date range open.
type Criteria struct {
	ProductLines []string
	Countries    []string
	Statuses     []string
	Quarters     []string
	Start        time.Time
	End          time.Time
}

// Filter narrows ds to rows whose value in col is a member of allowed,
// preserving source order. An empty allowed set is the identity: no
// selection means no restriction, not an empty result.
func Filter(ds *Dataset, col Column, allowed []string) *Dataset {
	if len(allowed) == 0 {
		return ds
	}

	want := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		want[v] = struct{}{}
	}

	var rows []models.SalesRecord
	for _, r := range ds.rows {
		if _, ok := want[col.value(r)]; ok {
			rows = append(rows, r)
		}
	}
	return NewDataset(rows)
}

// FilterDates keeps rows whose order date lies in [start, end], inclusive.
// A zero bound leaves that side open.
func FilterDates(ds *Dataset, start, end time.Time) *Dataset {
	if start.IsZero() && end.IsZero() {
		return ds
	}

	var rows []models.SalesRecord
	for _, r := range ds.rows {
		if !start.IsZero() && r.OrderDate.Before(start) {
			continue
		}
		if !end.IsZero() && r.OrderDate.After(end) {
			continue
		}
		rows = append(rows, r)
	}
	return NewDataset(rows)
}

// Apply runs every dimension of c conjunctively. Dimension order does not
// affect the result.
func Apply(ds *Dataset, c Criteria) *Dataset {
	out := Filter(ds, ColumnProductLine, c.ProductLines)
	out = Filter(out, ColumnCountry, c.Countries)
	out = Filter(out, ColumnStatus, c.Statuses)
	out = Filter(out, ColumnQuarter, c.Quarters)
	return FilterDates(out, c.Start, c.End)
}

// DistinctValues lists the sorted unique values of col, for the UI selectors.
func DistinctValues(ds *Dataset, col Column) []string {
	seen := make(map[string]struct{})
	for _, r := range ds.rows {
		seen[col.value(r)] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// DateBounds returns the earliest and latest order dates, for the date
// picker defaults. Both are zero for an empty dataset.
func DateBounds(ds *Dataset) (minDate, maxDate time.Time) {
	for _, r := range ds.rows {
		if minDate.IsZero() || r.OrderDate.Before(minDate) {
			minDate = r.OrderDate
		}
		if maxDate.IsZero() || r.OrderDate.After(maxDate) {
			maxDate = r.OrderDate
		}
	}
	return minDate, maxDate
}
