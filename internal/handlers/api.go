package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/plots"
	"sales-dashboard/internal/regression"
	"sales-dashboard/internal/services"
)

const (
	topCustomersLimit = 10
	topProductsLimit  = 10
	cacheControl      = "public, max-age=300"
)

type APIHandlers struct {
	data     *services.Dataset
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAPIHandlers(data *services.Dataset, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		data:     data,
		logger:   logger,
		validate: validator.New(),
	}
}

// filtered applies the request's filter params to the loaded dataset.
func (h *APIHandlers) filtered(r *http.Request) (*services.Dataset, error) {
	criteria, err := parseCriteria(r)
	if err != nil {
		return nil, apperrors.BadRequestWrap(err, "Invalid filter parameters")
	}
	return services.Apply(h.data, criteria), nil
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, services.ComputeKPIs(ds))
}

func (h *APIHandlers) HandleSalesOverTime(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	combine := r.URL.Query().Get("combine") != "false"
	apperrors.WriteSuccess(w, services.SalesOverTime(ds, combine))
}

func (h *APIHandlers) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, services.TopCustomers(ds, topCustomersLimit))
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, services.TopProducts(ds, topProductsLimit))
}

func (h *APIHandlers) HandleProductLineTotals(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, services.ProductLineTotals(ds))
}

// HandleFilterOptions serves the distinct selector values and date bounds
// of the unfiltered dataset; this never changes after startup.
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	minDate, maxDate := services.DateBounds(h.data)

	options := models.FilterOptions{
		ProductLines: services.DistinctValues(h.data, services.ColumnProductLine),
		Countries:    services.DistinctValues(h.data, services.ColumnCountry),
		Statuses:     services.DistinctValues(h.data, services.ColumnStatus),
		Quarters:     services.DistinctValues(h.data, services.ColumnQuarter),
		MinDate:      minDate.Format(dateParamLayout),
		MaxDate:      maxDate.Format(dateParamLayout),
	}

	apperrors.WriteSuccessWithHeaders(w, options, map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleModel trains the regression on the current filter selection and
// reports its fit metrics and feature importances.
func (h *APIHandlers) HandleModel(w http.ResponseWriter, r *http.Request) {
	model, err := h.trainModel(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, model.Report)
}

// HandleModelPredict serves the ad-hoc prediction for one user-supplied
// (quantity, price) pair, using a model trained on the current filters.
func (h *APIHandlers) HandleModelPredict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	quantity, err := strconv.Atoi(q.Get("quantity"))
	if err != nil || quantity < 0 {
		h.writeError(w, r, apperrors.BadRequest("quantity must be a non-negative integer"))
		return
	}
	price, err := strconv.ParseFloat(q.Get("price"), 64)
	if err != nil || price < 0 {
		h.writeError(w, r, apperrors.BadRequest("price must be a non-negative number"))
		return
	}

	model, err := h.trainModel(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	apperrors.WriteSuccess(w, models.Prediction{
		QuantityOrdered: quantity,
		PriceEach:       price,
		PredictedSales:  model.Predict(quantity, price),
	})
}

// HandleModelPlot renders the diagnostic charts for the current model as PNG.
func (h *APIHandlers) HandleModelPlot(w http.ResponseWriter, r *http.Request) {
	model, err := h.trainModel(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	png, err := plots.ModelDiagnostics(model.Actual, model.Predicted)
	if err != nil {
		h.writeError(w, r, apperrors.InternalWrap(err, "Failed to render diagnostics"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cacheControl)
	w.Write(png)
}

func (h *APIHandlers) trainModel(r *http.Request) (*services.Model, error) {
	ds, err := h.filtered(r)
	if err != nil {
		return nil, err
	}

	model, err := services.TrainModel(ds)
	if errors.Is(err, regression.ErrInsufficientData) {
		return nil, apperrors.InsufficientData("Not enough data for selected filters. Please adjust the filter options.")
	}
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Model training failed")
	}
	return model, nil
}

// HandleExportCSV serves the filtered dataset as a UTF-8 CSV download.
func (h *APIHandlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data, err := services.ToCSV(ds)
	if err != nil {
		h.writeError(w, r, apperrors.InternalWrap(err, "Export failed"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_sales_data.csv"`)
	w.Write(data)
}

// HandleExportXLSX serves the filtered dataset as a spreadsheet download.
func (h *APIHandlers) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	ds, err := h.filtered(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data, err := services.ToXLSX(ds)
	if err != nil {
		h.writeError(w, r, apperrors.InternalWrap(err, "Export failed"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_sales_data.xlsx"`)
	w.Write(data)
}

type feedbackRequest struct {
	Message string `json:"message" validate:"required"`
}

// HandleFeedback accepts the sidebar feedback box submission. Feedback is
// logged, not persisted.
func (h *APIHandlers) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.BadRequestWrap(err, "Invalid feedback payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, apperrors.Validation("Please write some feedback before submitting."))
		return
	}

	h.logger.Info("feedback received",
		"length", len(req.Message),
		"request_id", observability.GetRequestID(r.Context()),
	)

	apperrors.WriteSuccess(w, map[string]string{
		"message": "Thank you for your feedback!",
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	apperrors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	minDate, maxDate := services.DateBounds(h.data)

	apperrors.WriteSuccess(w, map[string]any{
		"record_count":  h.data.Len(),
		"product_lines": len(services.DistinctValues(h.data, services.ColumnProductLine)),
		"countries":     len(services.DistinctValues(h.data, services.ColumnCountry)),
		"statuses":      len(services.DistinctValues(h.data, services.ColumnStatus)),
		"first_order":   minDate.Format(dateParamLayout),
		"last_order":    maxDate.Format(dateParamLayout),
	})
}
