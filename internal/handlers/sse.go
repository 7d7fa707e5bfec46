package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/i18n"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/regression"
	"sales-dashboard/internal/services"
)

var kpiTilesTemplate = template.Must(template.New("kpiTiles").Parse(`
<div id="kpi-tiles" class="kpi-row">
<div class="kpi-tile"><span class="kpi-label">{{.Labels.TotalSales}}</span><span class="kpi-value">{{.KPIs.FormattedTotalSales}}</span></div>
<div class="kpi-tile"><span class="kpi-label">{{.Labels.TotalOrders}}</span><span class="kpi-value">{{.KPIs.OrderCount}}</span></div>
<div class="kpi-tile"><span class="kpi-label">{{.Labels.AvgPerOrder}}</span><span class="kpi-value">{{.KPIs.FormattedAvgSalesPerOrder}}</span></div>
<div class="kpi-tile"><span class="kpi-label">{{.Labels.UniqueCustomers}}</span><span class="kpi-value">{{.KPIs.UniqueCustomers}}</span></div>
</div>`))

var modelMetricsTemplate = template.Must(template.New("modelMetrics").Funcs(template.FuncMap{
	"deref": func(v *float64) float64 { return *v },
}).Parse(`
<div id="model-metrics" class="kpi-row">
<div class="kpi-tile"><span class="kpi-label">R-squared</span><span class="kpi-value">{{printf "%.4f" .Report.R2}}</span></div>
<div class="kpi-tile"><span class="kpi-label">Adjusted R-squared</span><span class="kpi-value">{{if .Report.AdjustedR2}}{{printf "%.4f" (deref .Report.AdjustedR2)}}{{else}}N/A{{end}}</span></div>
<div class="kpi-tile"><span class="kpi-label">SSE</span><span class="kpi-value">{{printf "%.2f" .Report.SSE}}</span></div>
<div class="kpi-tile"><span class="kpi-label">Ordered Quantity Importance</span><span class="kpi-value">{{printf "%.4f" .Report.QuantityImportance}}</span></div>
<div class="kpi-tile"><span class="kpi-label">Price for Each Importance</span><span class="kpi-value">{{printf "%.4f" .Report.PriceImportance}}</span></div>
</div>
<img id="model-plot" src="/plots/model.png{{.PlotQuery}}" alt="Model diagnostics">`))

const insufficientDataFragment = `<div id="model-metrics" class="warning">Not enough data for selected filters. Please adjust the filter options.</div>
<img id="model-plot" src="" alt="" hidden>`

type SSEHandlers struct {
	data       *services.Dataset
	translator *i18n.Translator
	logger     *slog.Logger
}

func NewSSEHandlers(data *services.Dataset, translator *i18n.Translator, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		data:       data,
		translator: translator,
		logger:     logger,
	}
}

type kpiLabels struct {
	TotalSales      string
	TotalOrders     string
	AvgPerOrder     string
	UniqueCustomers string
}

// HandleDashboard recomputes the whole dashboard for the current filters:
// patches the KPI tile fragment and pushes the chart series as signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.logger.Warn("invalid dashboard filters", "error", err)
		return
	}
	ds := services.Apply(h.data, criteria)

	sse := datastar.NewSSE(w, r)

	var buf strings.Builder
	tmplErr := kpiTilesTemplate.Execute(&buf, struct {
		KPIs   models.KPIResult
		Labels kpiLabels
	}{
		KPIs: services.ComputeKPIs(ds),
		Labels: kpiLabels{
			TotalSales:      h.translator.T("Total Sales"),
			TotalOrders:     h.translator.T("Total Orders"),
			AvgPerOrder:     h.translator.T("Average Sales per Order"),
			UniqueCustomers: h.translator.T("Unique Customers"),
		},
	})
	if tmplErr != nil {
		h.logger.Error("render kpi tiles", "error", tmplErr)
		return
	}
	sse.PatchElements(buf.String())

	combine := r.URL.Query().Get("combine") != "false"
	signals, err := json.Marshal(map[string]any{
		"salesOverTime":     services.SalesOverTime(ds, combine),
		"topCustomers":      services.TopCustomers(ds, topCustomersLimit),
		"topProducts":       services.TopProducts(ds, topProductsLimit),
		"productLineTotals": services.ProductLineTotals(ds),
		"recordCount":       ds.Len(),
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandlePredict retrains the regression for the current filters and patches
// the metrics fragment, plus a prediction signal when quantity and price
// are supplied.
func (h *SSEHandlers) HandlePredict(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.logger.Warn("invalid prediction filters", "error", err)
		return
	}
	ds := services.Apply(h.data, criteria)

	sse := datastar.NewSSE(w, r)

	model, err := services.TrainModel(ds)
	if errors.Is(err, regression.ErrInsufficientData) {
		sse.PatchElements(insufficientDataFragment)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		return
	}
	if err != nil {
		h.logger.Error("train model", "error", err)
		return
	}

	var buf strings.Builder
	if err := modelMetricsTemplate.Execute(&buf, struct {
		Report    models.ModelReport
		PlotQuery template.URL
	}{
		Report:    model.Report,
		PlotQuery: template.URL(plotQuery(r)),
	}); err != nil {
		h.logger.Error("render model metrics", "error", err)
		return
	}
	sse.PatchElements(buf.String())

	q := r.URL.Query()
	if q.Get("quantity") != "" && q.Get("price") != "" {
		quantity, qErr := strconv.Atoi(q.Get("quantity"))
		price, pErr := strconv.ParseFloat(q.Get("price"), 64)
		if qErr == nil && pErr == nil {
			signals, err := json.Marshal(map[string]any{
				"predictedSales": model.Predict(quantity, price),
			})
			if err == nil {
				sse.PatchSignals(signals)
			}
		}
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// plotQuery carries the filter params through to the plot image URL so the
// PNG is rendered from the same model.
func plotQuery(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}
