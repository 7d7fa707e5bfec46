package plots

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestModelDiagnostics(t *testing.T) {
	actual := []float64{50, 100, 150, 200, 250}
	predicted := []float64{55, 95, 160, 190, 255}

	out, err := ModelDiagnostics(actual, predicted)
	if err != nil {
		t.Fatalf("ModelDiagnostics() error: %v", err)
	}
	if !bytes.HasPrefix(out, pngMagic) {
		t.Error("output is not a PNG image")
	}
}

func TestModelDiagnostics_LengthMismatch(t *testing.T) {
	if _, err := ModelDiagnostics([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("mismatched lengths: want error, got nil")
	}
}

func TestModelDiagnostics_SmallSample(t *testing.T) {
	// Two points is the smallest set a model can be trained on; the
	// diagnostics must still render.
	out, err := ModelDiagnostics([]float64{50, 100}, []float64{60, 90})
	if err != nil {
		t.Fatalf("ModelDiagnostics() error: %v", err)
	}
	if !bytes.HasPrefix(out, pngMagic) {
		t.Error("output is not a PNG image")
	}
}
