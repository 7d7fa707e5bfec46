package services

import "sales-dashboard/internal/models"

// columns is the canonical column order of the source extract. The loader
// resolves columns by name so input order does not matter; the exporters
// always write this order.
var columns = []string{
	"ORDERNUMBER",
	"QUANTITYORDERED",
	"PRICEEACH",
	"ORDERLINENUMBER",
	"SALES",
	"ORDERDATE",
	"STATUS",
	"QTR_ID",
	"PRODUCTLINE",
	"PRODUCTCODE",
	"CUSTOMERNAME",
	"COUNTRY",
}

// Dataset is an ordered, immutable snapshot of sales records. Filtering
// produces a new Dataset over a fresh slice; the source is never mutated,
// so concurrent readers need no locking.
type Dataset struct {
	rows []models.SalesRecord
}

func NewDataset(rows []models.SalesRecord) *Dataset {
	return &Dataset{rows: rows}
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the backing slice. Callers must treat it as read-only.
func (d *Dataset) Rows() []models.SalesRecord {
	return d.rows
}
