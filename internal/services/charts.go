package services

import (
	"cmp"
	"slices"

	"sales-dashboard/internal/models"
)

const chartDateLayout = "2006-01-02"

// SalesOverTime sums sales per order date for the area chart. When combine
// is false the series is additionally split per product line, matching the
// dashboard's combine/split toggle.
func SalesOverTime(ds *Dataset, combine bool) []models.TimePoint {
	type key struct {
		date string
		line string
	}

	groups := make(map[key]float64)
	for _, r := range ds.rows {
		k := key{date: r.OrderDate.Format(chartDateLayout)}
		if !combine {
			k.line = r.ProductLine
		}
		groups[k] += r.Sales
	}

	points := make([]models.TimePoint, 0, len(groups))
	for k, sales := range groups {
		points = append(points, models.TimePoint{Date: k.date, ProductLine: k.line, Sales: sales})
	}
	slices.SortFunc(points, func(a, b models.TimePoint) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductLine, b.ProductLine)
	})
	return points
}

// TopCustomers ranks customers by summed sales, highest first.
func TopCustomers(ds *Dataset, limit int) []models.CustomerSales {
	groups := make(map[string]float64)
	for _, r := range ds.rows {
		groups[r.CustomerName] += r.Sales
	}

	result := make([]models.CustomerSales, 0, len(groups))
	for name, sales := range groups {
		result = append(result, models.CustomerSales{CustomerName: name, Sales: sales})
	}
	slices.SortFunc(result, func(a, b models.CustomerSales) int {
		if c := cmp.Compare(b.Sales, a.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerName, b.CustomerName)
	})
	return clamp(result, limit)
}

// TopProducts ranks (product code, product line) pairs by summed sales,
// highest first.
func TopProducts(ds *Dataset, limit int) []models.ProductSales {
	type key struct {
		code string
		line string
	}

	groups := make(map[key]float64)
	for _, r := range ds.rows {
		groups[key{code: r.ProductCode, line: r.ProductLine}] += r.Sales
	}

	result := make([]models.ProductSales, 0, len(groups))
	for k, sales := range groups {
		result = append(result, models.ProductSales{ProductCode: k.code, ProductLine: k.line, Sales: sales})
	}
	slices.SortFunc(result, func(a, b models.ProductSales) int {
		if c := cmp.Compare(b.Sales, a.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductCode, b.ProductCode)
	})
	return clamp(result, limit)
}

// ProductLineTotals sums sales per product line, sorted by line name.
func ProductLineTotals(ds *Dataset) []models.ProductLineTotal {
	groups := make(map[string]float64)
	for _, r := range ds.rows {
		groups[r.ProductLine] += r.Sales
	}

	result := make([]models.ProductLineTotal, 0, len(groups))
	for line, sales := range groups {
		result = append(result, models.ProductLineTotal{ProductLine: line, Sales: sales})
	}
	slices.SortFunc(result, func(a, b models.ProductLineTotal) int {
		return cmp.Compare(a.ProductLine, b.ProductLine)
	})
	return result
}

func clamp[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
