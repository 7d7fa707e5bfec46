package models

import "time"

// SalesRecord is one order line from the historical sales extract.
type SalesRecord struct {
	OrderNumber     int       `json:"order_number"`
	QuantityOrdered int       `json:"quantity_ordered"`
	PriceEach       float64   `json:"price_each"`
	OrderLineNumber int       `json:"order_line_number"`
	Sales           float64   `json:"sales"`
	OrderDate       time.Time `json:"order_date"`
	QuarterID       int       `json:"qtr_id"`
	ProductLine     string    `json:"product_line"`
	ProductCode     string    `json:"product_code"`
	Country         string    `json:"country"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
}

type TimePoint struct {
	Date        string  `json:"date"`
	ProductLine string  `json:"product_line,omitempty"`
	Sales       float64 `json:"sales"`
}

type CustomerSales struct {
	CustomerName string  `json:"customer_name"`
	Sales        float64 `json:"sales"`
}

type ProductSales struct {
	ProductCode string  `json:"product_code"`
	ProductLine string  `json:"product_line"`
	Sales       float64 `json:"sales"`
}

type ProductLineTotal struct {
	ProductLine string  `json:"product_line"`
	Sales       float64 `json:"sales"`
}
