package services

import (
	"reflect"
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func testDataset() *Dataset {
	return NewDataset([]models.SalesRecord{
		{OrderNumber: 10100, QuantityOrdered: 30, PriceEach: 95.7, Sales: 2871, OrderDate: date(2003, 2, 24), QuarterID: 1, ProductLine: "Motorcycles", ProductCode: "S10_1678", Country: "USA", Status: "Shipped", CustomerName: "Land of Toys Inc."},
		{OrderNumber: 10101, QuantityOrdered: 34, PriceEach: 81.35, Sales: 2765.9, OrderDate: date(2003, 5, 7), QuarterID: 2, ProductLine: "Classic Cars", ProductCode: "S18_1749", Country: "France", Status: "Shipped", CustomerName: "Reims Collectables"},
		{OrderNumber: 10102, QuantityOrdered: 41, PriceEach: 94.74, Sales: 3884.34, OrderDate: date(2003, 7, 1), QuarterID: 3, ProductLine: "Motorcycles", ProductCode: "S10_2016", Country: "France", Status: "Cancelled", CustomerName: "Lyon Souveniers"},
		{OrderNumber: 10103, QuantityOrdered: 26, PriceEach: 100, Sales: 5404.62, OrderDate: date(2004, 1, 29), QuarterID: 1, ProductLine: "Classic Cars", ProductCode: "S18_2248", Country: "USA", Status: "Shipped", CustomerName: "Land of Toys Inc."},
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilter_EmptyAllowedIsIdentity(t *testing.T) {
	ds := testDataset()
	if got := Filter(ds, ColumnCountry, nil); got != ds {
		t.Error("Filter() with an empty allowed set should return the input unchanged")
	}
	if got := Filter(ds, ColumnCountry, []string{}); got != ds {
		t.Error("Filter() with an empty allowed set should return the input unchanged")
	}
}

func TestFilter_Membership(t *testing.T) {
	ds := testDataset()
	got := Filter(ds, ColumnCountry, []string{"France"})
	if got.Len() != 2 {
		t.Fatalf("expected 2 French rows, got %d", got.Len())
	}
	// Source order is preserved.
	if got.Rows()[0].OrderNumber != 10101 || got.Rows()[1].OrderNumber != 10102 {
		t.Errorf("rows out of source order: %v", got.Rows())
	}
}

func TestFilter_Idempotent(t *testing.T) {
	ds := testDataset()
	once := Filter(ds, ColumnProductLine, []string{"Motorcycles"})
	twice := Filter(once, ColumnProductLine, []string{"Motorcycles"})
	if !reflect.DeepEqual(once.Rows(), twice.Rows()) {
		t.Error("filtering twice with the same values should equal filtering once")
	}
}

func TestFilter_Commutes(t *testing.T) {
	ds := testDataset()
	ab := Filter(Filter(ds, ColumnCountry, []string{"France"}), ColumnProductLine, []string{"Motorcycles"})
	ba := Filter(Filter(ds, ColumnProductLine, []string{"Motorcycles"}), ColumnCountry, []string{"France"})
	if !reflect.DeepEqual(ab.Rows(), ba.Rows()) {
		t.Error("filters on different columns should commute")
	}
}

func TestFilter_NoMatches(t *testing.T) {
	ds := testDataset()
	got := Filter(ds, ColumnCountry, []string{"Atlantis"})
	if got.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", got.Len())
	}
}

func TestFilter_Quarter(t *testing.T) {
	ds := testDataset()
	got := Filter(ds, ColumnQuarter, []string{"1"})
	if got.Len() != 2 {
		t.Errorf("expected 2 Q1 rows, got %d", got.Len())
	}
}

func TestFilterDates(t *testing.T) {
	ds := testDataset()

	got := FilterDates(ds, date(2003, 5, 7), date(2003, 12, 31))
	if got.Len() != 2 {
		t.Errorf("inclusive range: expected 2 rows, got %d", got.Len())
	}

	if got := FilterDates(ds, time.Time{}, time.Time{}); got != ds {
		t.Error("open range should be the identity")
	}

	onlyEnd := FilterDates(ds, time.Time{}, date(2003, 2, 24))
	if onlyEnd.Len() != 1 {
		t.Errorf("open start: expected 1 row, got %d", onlyEnd.Len())
	}
}

func TestApply_Conjunctive(t *testing.T) {
	ds := testDataset()
	got := Apply(ds, Criteria{
		Countries:    []string{"USA"},
		ProductLines: []string{"Classic Cars"},
	})
	if got.Len() != 1 || got.Rows()[0].OrderNumber != 10103 {
		t.Errorf("expected only order 10103, got %v", got.Rows())
	}
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	ds := testDataset()
	if got := Apply(ds, Criteria{}); got != ds {
		t.Error("empty criteria should be the identity")
	}
}

func TestDistinctValues(t *testing.T) {
	ds := testDataset()

	want := []string{"Classic Cars", "Motorcycles"}
	if got := DistinctValues(ds, ColumnProductLine); !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctValues(product line) = %v, want %v", got, want)
	}

	wantQ := []string{"1", "2", "3"}
	if got := DistinctValues(ds, ColumnQuarter); !reflect.DeepEqual(got, wantQ) {
		t.Errorf("DistinctValues(quarter) = %v, want %v", got, wantQ)
	}
}

func TestDateBounds(t *testing.T) {
	ds := testDataset()
	minDate, maxDate := DateBounds(ds)
	if !minDate.Equal(date(2003, 2, 24)) {
		t.Errorf("min = %v", minDate)
	}
	if !maxDate.Equal(date(2004, 1, 29)) {
		t.Errorf("max = %v", maxDate)
	}

	minDate, maxDate = DateBounds(NewDataset(nil))
	if !minDate.IsZero() || !maxDate.IsZero() {
		t.Error("empty dataset should have zero bounds")
	}
}
