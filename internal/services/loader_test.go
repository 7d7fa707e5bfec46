package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCSV = `ORDERNUMBER,QUANTITYORDERED,PRICEEACH,ORDERLINENUMBER,SALES,ORDERDATE,STATUS,QTR_ID,PRODUCTLINE,PRODUCTCODE,CUSTOMERNAME,COUNTRY
10100,30,95.7,1,2871,2/24/2003 0:00,Shipped,1,Motorcycles,S10_1678,Land of Toys Inc.,USA
10101,34,81.35,2,2765.9,5/7/2003 0:00,Shipped,2,Classic Cars,S18_1749,Reims Collectables,France
10102,41,94.74,3,3884.34,7/1/2003 0:00,Cancelled,3,Motorcycles,S10_2016,Lyon Souveniers,France`

func writeTempCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeTempCSV(t, []byte(validCSV))

	l := NewLoader()
	ds, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("expected 3 records, got %d", ds.Len())
	}

	first := ds.Rows()[0]
	if first.OrderNumber != 10100 {
		t.Errorf("OrderNumber = %d, want 10100", first.OrderNumber)
	}
	if first.QuantityOrdered != 30 {
		t.Errorf("QuantityOrdered = %d, want 30", first.QuantityOrdered)
	}
	if first.Sales != 2871 {
		t.Errorf("Sales = %v, want 2871", first.Sales)
	}
	if got := first.OrderDate.Format("2006-01-02"); got != "2003-02-24" {
		t.Errorf("OrderDate = %s, want 2003-02-24", got)
	}
	if first.ProductLine != "Motorcycles" {
		t.Errorf("ProductLine = %q", first.ProductLine)
	}
}

func TestLoader_Memoization(t *testing.T) {
	path := writeTempCSV(t, []byte(validCSV))

	l := NewLoader()
	first, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("repeated Load() of the same path should return the identical Dataset")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader()
	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("Load() of a missing file should error")
	}
}

func TestLoader_Latin1Decoding(t *testing.T) {
	// 0xE9 is "é" in Latin-1.
	content := []byte("ORDERNUMBER,QUANTITYORDERED,PRICEEACH,ORDERLINENUMBER,SALES,ORDERDATE,STATUS,QTR_ID,PRODUCTLINE,PRODUCTCODE,CUSTOMERNAME,COUNTRY\n" +
		"10100,30,95.7,1,2871,2/24/2003 0:00,Shipped,1,Motorcycles,S10_1678,Caf\xe9 Imports,France\n")
	path := writeTempCSV(t, content)

	l := NewLoader()
	ds, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Rows()[0].CustomerName; got != "Café Imports" {
		t.Errorf("CustomerName = %q, want %q", got, "Café Imports")
	}
}

func TestParse_MissingColumn(t *testing.T) {
	csv := "ORDERNUMBER,QUANTITYORDERED\n10100,30\n"
	if _, err := Parse(context.Background(), strings.NewReader(csv)); err == nil {
		t.Error("Parse() without required columns should error")
	}
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	csv := validCSV + "\nnot-a-number,30,95.7,1,2871,2/24/2003 0:00,Shipped,1,Motorcycles,S10_1678,X,USA"
	ds, err := Parse(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("expected malformed row to be skipped, got %d records", ds.Len())
	}
}

func TestParse_NoValidRecords(t *testing.T) {
	csv := "ORDERNUMBER,QUANTITYORDERED,PRICEEACH,ORDERLINENUMBER,SALES,ORDERDATE,STATUS,QTR_ID,PRODUCTLINE,PRODUCTCODE,CUSTOMERNAME,COUNTRY\n" +
		"bad,bad,bad,bad,bad,bad,x,bad,x,x,x,x\n"
	if _, err := Parse(context.Background(), strings.NewReader(csv)); err == nil {
		t.Error("Parse() with no valid records should error")
	}
}

func TestParse_RejectsNegativeQuantity(t *testing.T) {
	csv := "ORDERNUMBER,QUANTITYORDERED,PRICEEACH,ORDERLINENUMBER,SALES,ORDERDATE,STATUS,QTR_ID,PRODUCTLINE,PRODUCTCODE,CUSTOMERNAME,COUNTRY\n" +
		"10100,-5,95.7,1,2871,2/24/2003 0:00,Shipped,1,Motorcycles,S10_1678,X,USA\n" +
		"10101,34,81.35,2,2765.9,5/7/2003 0:00,Shipped,2,Classic Cars,S18_1749,Y,France\n"
	ds, err := Parse(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 1 {
		t.Errorf("negative quantity row should be skipped, got %d records", ds.Len())
	}
}
