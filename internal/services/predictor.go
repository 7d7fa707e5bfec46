package services

import (
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/regression"
)

// salesFeatures are ordered quantity and unit price; order line number is
// deliberately excluded from the model.
const featureCount = 2

// Model wraps a fitted forest together with its in-sample evaluation, for
// one filter selection. It lives for a single interaction: every filter
// change trains a fresh model and discards this one.
type Model struct {
	forest    *regression.Forest
	Actual    []float64
	Predicted []float64
	Report    models.ModelReport
}

// TrainModel fits the sales regression on the filtered snapshot, using
// ordered quantity and unit price to predict the sales amount. Returns
// regression.ErrInsufficientData when ds has fewer than two rows.
func TrainModel(ds *Dataset) (*Model, error) {
	if ds.Len() < 2 {
		return nil, regression.ErrInsufficientData
	}

	x := make([][]float64, ds.Len())
	y := make([]float64, ds.Len())
	for i, r := range ds.rows {
		x[i] = []float64{float64(r.QuantityOrdered), r.PriceEach}
		y[i] = r.Sales
	}

	forest, err := regression.Fit(x, y)
	if err != nil {
		return nil, err
	}

	predicted := forest.PredictAll(x)
	metrics := regression.Evaluate(y, predicted, featureCount)
	importances := forest.FeatureImportances()

	report := models.ModelReport{
		SampleSize:         metrics.SampleSize,
		R2:                 metrics.R2,
		SSE:                metrics.SSE,
		QuantityImportance: importances[0],
		PriceImportance:    importances[1],
	}
	if metrics.AdjustedR2Valid {
		adjusted := metrics.AdjustedR2
		report.AdjustedR2 = &adjusted
	}

	return &Model{
		forest:    forest,
		Actual:    y,
		Predicted: predicted,
		Report:    report,
	}, nil
}

// Predict returns the estimated sales amount for one ad-hoc
// (quantity, price) pair.
func (m *Model) Predict(quantity int, price float64) float64 {
	return m.forest.Predict([]float64{float64(quantity), price})
}
