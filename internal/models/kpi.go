package models

import "fmt"

// KPIResult holds the four headline metrics for one dataset snapshot.
// TotalSalesMillions and AvgSalesPerOrderThousands are pre-scaled and
// rounded to two decimals; the counts are distinct counts.
type KPIResult struct {
	TotalSalesMillions        float64 `json:"total_sales_millions"`
	OrderCount                int     `json:"order_count"`
	AvgSalesPerOrderThousands float64 `json:"avg_sales_per_order_thousands"`
	UniqueCustomers           int     `json:"unique_customers"`
}

// FormattedTotalSales renders the tile value, e.g. "10.03M".
func (k KPIResult) FormattedTotalSales() string {
	return fmt.Sprintf("%.2fM", k.TotalSalesMillions)
}

// FormattedAvgSalesPerOrder renders the tile value, e.g. "3.55K".
func (k KPIResult) FormattedAvgSalesPerOrder() string {
	return fmt.Sprintf("%.2fK", k.AvgSalesPerOrderThousands)
}
