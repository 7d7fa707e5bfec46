package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales-dashboard/internal/i18n"
)

func newTestSSEHandlers(t *testing.T, lang string) *SSEHandlers {
	t.Helper()
	return NewSSEHandlers(createTestDataset(), i18n.New(lang), slog.Default())
}

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	h := newTestSSEHandlers(t, "en")

	req := httptest.NewRequest(http.MethodGet, "/sse/dashboard", nil)
	w := httptest.NewRecorder()
	h.HandleDashboard(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event-stream content-type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, `id="kpi-tiles"`) {
		t.Error("expected kpi-tiles fragment in stream")
	}
	if !strings.Contains(body, "Total Sales") {
		t.Error("expected localized KPI labels in stream")
	}
	if !strings.Contains(body, "salesOverTime") || !strings.Contains(body, "recordCount") {
		t.Error("expected chart signals in stream")
	}
}

func TestSSEHandlers_HandleDashboard_Localized(t *testing.T) {
	h := newTestSSEHandlers(t, "es")

	req := httptest.NewRequest(http.MethodGet, "/sse/dashboard", nil)
	w := httptest.NewRecorder()
	h.HandleDashboard(w, req)

	if body := w.Body.String(); !strings.Contains(body, "Ventas Totales") {
		t.Error("expected Spanish KPI labels in stream")
	}
}

func TestSSEHandlers_HandleDashboard_Filtered(t *testing.T) {
	h := newTestSSEHandlers(t, "en")

	req := httptest.NewRequest(http.MethodGet, "/sse/dashboard?country=Spain", nil)
	w := httptest.NewRecorder()
	h.HandleDashboard(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `\"recordCount\":1`) && !strings.Contains(body, `"recordCount":1`) {
		t.Errorf("expected recordCount 1 in signals, got:\n%s", body)
	}
}

func TestSSEHandlers_HandlePredict(t *testing.T) {
	h := newTestSSEHandlers(t, "en")

	req := httptest.NewRequest(http.MethodGet, "/sse/predict?quantity=20&price=60", nil)
	w := httptest.NewRecorder()
	h.HandlePredict(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `id="model-metrics"`) {
		t.Error("expected model-metrics fragment in stream")
	}
	// Filters propagate to the diagnostics image URL.
	if !strings.Contains(body, "/plots/model.png?quantity=20") {
		t.Errorf("expected plot URL with query in stream, got:\n%s", body)
	}
	if !strings.Contains(body, "predictedSales") {
		t.Error("expected predictedSales signal in stream")
	}
	// Three rows leave no degrees of freedom for the adjusted statistic.
	if !strings.Contains(body, "N/A") {
		t.Error("expected N/A adjusted R-squared for three-row sample")
	}
}

func TestSSEHandlers_HandlePredict_InsufficientData(t *testing.T) {
	h := newTestSSEHandlers(t, "en")

	req := httptest.NewRequest(http.MethodGet, "/sse/predict?country=Nowhere", nil)
	w := httptest.NewRecorder()
	h.HandlePredict(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Not enough data for selected filters") {
		t.Errorf("expected insufficient-data fragment, got:\n%s", body)
	}
	if strings.Contains(body, `id="model-metrics" class="kpi-row"`) {
		t.Error("metrics fragment should not be patched when training fails")
	}
}

func TestSSEHandlers_HandlePredict_NoInputs(t *testing.T) {
	h := newTestSSEHandlers(t, "en")

	req := httptest.NewRequest(http.MethodGet, "/sse/predict", nil)
	w := httptest.NewRecorder()
	h.HandlePredict(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `id="model-metrics"`) {
		t.Error("expected model-metrics fragment in stream")
	}
	if strings.Contains(body, "predictedSales") {
		t.Error("prediction signal should require quantity and price params")
	}
}
