// Package plots renders the prediction page's model diagnostics as PNG:
// an actual-versus-predicted scatter with an identity reference line, and
// a residual histogram, tiled side by side.
package plots

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const histogramBins = 30

// ModelDiagnostics draws the two diagnostic charts for one fitted model.
// actual and predicted must be non-empty and of equal length.
func ModelDiagnostics(actual, predicted []float64) ([]byte, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return nil, fmt.Errorf("mismatched series: %d actual, %d predicted", len(actual), len(predicted))
	}

	scatter, err := scatterPlot(actual, predicted)
	if err != nil {
		return nil, err
	}
	residuals, err := residualPlot(actual, predicted)
	if err != nil {
		return nil, err
	}

	img := vgimg.New(vg.Points(900), vg.Points(450))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Points(12),
		PadY: vg.Points(12),
	}
	canvases := plot.Align([][]*plot.Plot{{scatter, residuals}}, tiles, dc)
	scatter.Draw(canvases[0][0])
	residuals.Draw(canvases[0][1])

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func scatterPlot(actual, predicted []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Actual vs. Predicted Sales"
	p.X.Label.Text = "Actual Sales"
	p.Y.Label.Text = "Predicted Sales"

	xys := make(plotter.XYs, len(actual))
	lo, hi := actual[0], actual[0]
	for i := range actual {
		xys[i].X = actual[i]
		xys[i].Y = predicted[i]
		lo = min(lo, actual[i])
		hi = max(hi, actual[i])
	}

	points, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	points.GlyphStyle.Radius = vg.Points(2)
	points.GlyphStyle.Color = color.RGBA{B: 180, A: 160}
	p.Add(points)

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, err
	}
	identity.LineStyle.Color = color.RGBA{R: 200, A: 255}
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(identity)

	return p, nil
}

func residualPlot(actual, predicted []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Residual Distribution"
	p.X.Label.Text = "Residuals"

	values := make(plotter.Values, len(actual))
	for i := range actual {
		values[i] = actual[i] - predicted[i]
	}

	bins := histogramBins
	if len(values) < bins {
		bins = len(values)
	}
	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, err
	}
	hist.FillColor = color.RGBA{B: 180, A: 200}
	p.Add(hist)

	return p, nil
}
