package models

// ModelReport is the regression summary for the current filter selection.
// AdjustedR2 is nil when the sample is too small for the penalty term
// (sample size <= feature count + 1).
type ModelReport struct {
	SampleSize         int      `json:"sample_size"`
	R2                 float64  `json:"r2"`
	AdjustedR2         *float64 `json:"adjusted_r2"`
	SSE                float64  `json:"sse"`
	QuantityImportance float64  `json:"quantity_importance"`
	PriceImportance    float64  `json:"price_importance"`
}

// Prediction is one ad-hoc model evaluation for user-supplied inputs.
type Prediction struct {
	QuantityOrdered int     `json:"quantity_ordered"`
	PriceEach       float64 `json:"price_each"`
	PredictedSales  float64 `json:"predicted_sales"`
}

// FilterOptions carries the distinct selector values the UI offers,
// derived from the unfiltered dataset.
type FilterOptions struct {
	ProductLines []string `json:"product_lines"`
	Countries    []string `json:"countries"`
	Statuses     []string `json:"statuses"`
	Quarters     []string `json:"quarters"`
	MinDate      string   `json:"min_date"`
	MaxDate      string   `json:"max_date"`
}
