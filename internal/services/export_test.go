package services

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestToCSV_HeaderAndShape(t *testing.T) {
	ds := testDataset()

	out, err := ToCSV(ds)
	if err != nil {
		t.Fatalf("ToCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != ds.Len()+1 {
		t.Fatalf("expected %d lines, got %d", ds.Len()+1, len(lines))
	}
	wantHeader := "ORDERNUMBER,QUANTITYORDERED,PRICEEACH,ORDERLINENUMBER,SALES,ORDERDATE,STATUS,QTR_ID,PRODUCTLINE,PRODUCTCODE,CUSTOMERNAME,COUNTRY"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
}

func TestToCSV_RoundTrip(t *testing.T) {
	ds := testDataset()

	out, err := ToCSV(ds)
	if err != nil {
		t.Fatalf("ToCSV() error: %v", err)
	}

	back, err := Parse(context.Background(), bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Parse(ToCSV()) error: %v", err)
	}

	if !reflect.DeepEqual(back.Rows(), ds.Rows()) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", back.Rows(), ds.Rows())
	}
}

func TestToCSV_EmptyDataset(t *testing.T) {
	out, err := ToCSV(NewDataset(nil))
	if err != nil {
		t.Fatalf("ToCSV() error: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(out)), "\n"); len(lines) != 1 {
		t.Errorf("empty dataset should export header only, got %d lines", len(lines))
	}
}

func TestToXLSX(t *testing.T) {
	out, err := ToXLSX(testDataset())
	if err != nil {
		t.Fatalf("ToXLSX() error: %v", err)
	}
	// XLSX is a zip container.
	if len(out) < 4 || out[0] != 'P' || out[1] != 'K' {
		t.Error("ToXLSX() output is not a zip archive")
	}
}
