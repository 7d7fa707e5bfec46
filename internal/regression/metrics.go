package regression

import "gonum.org/v1/gonum/stat"

// Metrics summarizes in-sample fit quality. AdjustedR2Valid is false when
// the sample is too small for the penalty term (n <= featureCount + 1),
// where the adjusted statistic is mathematically undefined.
type Metrics struct {
	SampleSize      int
	R2              float64
	AdjustedR2      float64
	AdjustedR2Valid bool
	SSE             float64
}

// Evaluate compares actual against predicted targets. actual and predicted
// must have equal length.
func Evaluate(actual, predicted []float64, featureCount int) Metrics {
	n := len(actual)

	var sse, sst float64
	mean := stat.Mean(actual, nil)
	for i, a := range actual {
		d := a - predicted[i]
		sse += d * d
		t := a - mean
		sst += t * t
	}

	m := Metrics{SampleSize: n, SSE: sse}
	if sst == 0 {
		// Constant target: perfect fit scores 1, anything else 0.
		if sse == 0 {
			m.R2 = 1
		}
	} else {
		m.R2 = stat.RSquaredFrom(predicted, actual, nil)
	}

	if n > featureCount+1 {
		m.AdjustedR2 = 1 - (1-m.R2)*float64(n-1)/float64(n-featureCount-1)
		m.AdjustedR2Valid = true
	}
	return m
}
