package regression

import "sort"

const minSamplesSplit = 2

// node is one decision node of a regression tree. Leaves carry the mean
// target of the rows that reached them.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
	leaf      bool
}

// treeBuilder grows a full-depth CART regression tree over a bootstrap
// sample, accumulating per-feature impurity reductions for the forest's
// importance scores.
type treeBuilder struct {
	x          [][]float64
	y          []float64
	nFeatures  int
	reductions []float64
}

func (b *treeBuilder) build(indices []int) *node {
	mean, sse := meanAndSSE(b.y, indices)
	if len(indices) < minSamplesSplit || sse == 0 {
		return &node{leaf: true, value: mean}
	}

	feature, threshold, improvement, ok := b.bestSplit(indices, sse)
	if !ok {
		return &node{leaf: true, value: mean}
	}
	b.reductions[feature] += improvement

	var left, right []int
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left),
		right:     b.build(right),
	}
}

// bestSplit scans every feature for the threshold with the largest sum of
// squared errors reduction. Returns ok=false when no split separates the
// rows (all feature values identical).
func (b *treeBuilder) bestSplit(indices []int, parentSSE float64) (feature int, threshold, improvement float64, ok bool) {
	order := make([]int, len(indices))

	for f := 0; f < b.nFeatures; f++ {
		copy(order, indices)
		sort.Slice(order, func(i, j int) bool {
			return b.x[order[i]][f] < b.x[order[j]][f]
		})

		// Running left-side sums; right side derived from the totals.
		var sumL, sumSqL float64
		var sumT, sumSqT float64
		for _, i := range order {
			sumT += b.y[i]
			sumSqT += b.y[i] * b.y[i]
		}

		n := len(order)
		for i := 0; i < n-1; i++ {
			yi := b.y[order[i]]
			sumL += yi
			sumSqL += yi * yi

			xCur := b.x[order[i]][f]
			xNext := b.x[order[i+1]][f]
			if xCur == xNext {
				continue // no threshold between equal values
			}

			nL := float64(i + 1)
			nR := float64(n - i - 1)
			sseL := sumSqL - sumL*sumL/nL
			sumR := sumT - sumL
			sseR := (sumSqT - sumSqL) - sumR*sumR/nR

			if gain := parentSSE - sseL - sseR; gain > improvement {
				feature = f
				threshold = (xCur + xNext) / 2
				improvement = gain
				ok = true
			}
		}
	}
	return feature, threshold, improvement, ok
}

func (n *node) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func meanAndSSE(y []float64, indices []int) (mean, sse float64) {
	if len(indices) == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for _, i := range indices {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	n := float64(len(indices))
	mean = sum / n
	sse = sumSq - sum*sum/n
	if sse < 0 {
		sse = 0 // floating point slop on constant targets
	}
	return mean, sse
}
