package regression

import (
	"errors"
	"math"
	"testing"
)

func trainingData() ([][]float64, []float64) {
	x := [][]float64{
		{10, 5}, {20, 5}, {30, 5}, {40, 5},
		{10, 10}, {20, 10}, {30, 10}, {40, 10},
	}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = row[0] * row[1]
	}
	return x, y
}

func TestFit_InsufficientData(t *testing.T) {
	if _, err := Fit(nil, nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Fit(nil, nil): got %v, want ErrInsufficientData", err)
	}
	if _, err := Fit([][]float64{{1, 2}}, []float64{3}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Fit with one row: got %v, want ErrInsufficientData", err)
	}
}

func TestFit_LengthMismatch(t *testing.T) {
	x, y := trainingData()
	if _, err := Fit(x, y[:len(y)-1]); err == nil {
		t.Error("Fit with mismatched lengths: want error, got nil")
	}
}

func TestForest_PredictWithinTargetRange(t *testing.T) {
	x, y := trainingData()
	f, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range y {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, row := range x {
		got := f.Predict(row)
		if got < lo || got > hi {
			t.Errorf("Predict(%v) = %v, outside training range [%v, %v]", row, got, lo, hi)
		}
	}
}

func TestForest_Deterministic(t *testing.T) {
	x, y := trainingData()
	f1, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	f2, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	probe := []float64{25, 7}
	if p1, p2 := f1.Predict(probe), f2.Predict(probe); p1 != p2 {
		t.Errorf("predictions differ between fits: %v vs %v", p1, p2)
	}
}

func TestForest_InSampleFit(t *testing.T) {
	// With distinct rows and full-depth trees the in-sample error should be
	// small relative to the spread of the target.
	x, y := trainingData()
	f, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	predicted := f.PredictAll(x)
	m := Evaluate(y, predicted, 2)
	if m.R2 < 0.5 {
		t.Errorf("in-sample R2 = %v, want >= 0.5", m.R2)
	}
}

func TestForest_FeatureImportances(t *testing.T) {
	x, y := trainingData()
	f, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	imp := f.FeatureImportances()
	if len(imp) != 2 {
		t.Fatalf("len(importances) = %d, want 2", len(imp))
	}
	var sum float64
	for i, v := range imp {
		if v < 0 {
			t.Errorf("importance[%d] = %v, want non-negative", i, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("importances sum to %v, want 1", sum)
	}

	// Callers must not be able to corrupt the fitted model.
	imp[0] = 99
	if f.FeatureImportances()[0] == 99 {
		t.Error("FeatureImportances() returned internal slice")
	}
}

func TestNormalize_ZeroTotal(t *testing.T) {
	for _, v := range normalize([]float64{0, 0}) {
		if v != 0 {
			t.Errorf("normalize of zeros produced %v, want 0", v)
		}
	}
}
