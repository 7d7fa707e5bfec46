package services

import (
	"math"

	"sales-dashboard/internal/models"
)

// ComputeKPIs derives the four headline metrics from one dataset snapshot.
// Pure function of ds; an empty dataset yields all zeros, and the average
// reports zero rather than dividing by a zero order count.
func ComputeKPIs(ds *Dataset) models.KPIResult {
	var total float64
	orders := make(map[int]struct{})
	customers := make(map[string]struct{})

	for _, r := range ds.rows {
		total += r.Sales
		orders[r.OrderNumber] = struct{}{}
		customers[r.CustomerName] = struct{}{}
	}

	result := models.KPIResult{
		TotalSalesMillions: round2(total / 1e6),
		OrderCount:         len(orders),
		UniqueCustomers:    len(customers),
	}
	if result.OrderCount > 0 {
		result.AvgSalesPerOrderThousands = round2(total / float64(result.OrderCount) / 1e3)
	}
	return result
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
