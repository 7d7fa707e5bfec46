// Package regression fits a random-forest regressor over the filtered
// sales snapshot: an ensemble of full-depth CART trees trained on
// bootstrap samples, averaged at prediction time. Training is a one-shot
// in-memory batch fit with a fixed seed, so a given filter selection
// always produces the same model.
package regression

import (
	"errors"
	"math/rand"
)

const (
	// NumTrees is the ensemble size.
	NumTrees = 100
	// Seed fixes the bootstrap sampling for reproducible fits.
	Seed = 42
)

// ErrInsufficientData is returned when the training set has fewer than two
// rows; a model needs at least two points to fit meaningfully.
var ErrInsufficientData = errors.New("insufficient data to train model")

// Forest is a fitted random-forest regression model.
type Forest struct {
	trees       []*node
	importances []float64
	nFeatures   int
}

// Fit trains the ensemble on feature matrix x (one row per observation)
// against target y. Deterministic for identical inputs.
func Fit(x [][]float64, y []float64) (*Forest, error) {
	if len(x) < 2 || len(x) != len(y) {
		return nil, ErrInsufficientData
	}
	nFeatures := len(x[0])

	rng := rand.New(rand.NewSource(Seed))
	reductions := make([]float64, nFeatures)
	trees := make([]*node, NumTrees)

	for t := range trees {
		indices := make([]int, len(x))
		for i := range indices {
			indices[i] = rng.Intn(len(x))
		}

		builder := &treeBuilder{
			x:          x,
			y:          y,
			nFeatures:  nFeatures,
			reductions: reductions,
		}
		trees[t] = builder.build(indices)
	}

	return &Forest{
		trees:       trees,
		importances: normalize(reductions),
		nFeatures:   nFeatures,
	}, nil
}

// Predict averages the ensemble's output for one feature vector.
func (f *Forest) Predict(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// PredictAll returns in-sample predictions for every row of x.
func (f *Forest) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = f.Predict(row)
	}
	return out
}

// FeatureImportances returns the relative impurity-reduction contribution
// of each feature. Values are non-negative and sum to one unless no split
// was ever made, in which case all are zero.
func (f *Forest) FeatureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}

func normalize(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	out := make([]float64, len(values))
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total
	}
	return out
}
