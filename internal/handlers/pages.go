package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"sales-dashboard/internal/i18n"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

const pageLayout = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0;display:flex}
aside{width:260px;min-height:100vh;padding:16px;background:#f4f4f6;border-right:1px solid #ddd}
main{flex:1;padding:24px}
.kpi-row{display:flex;gap:16px;margin:16px 0}
.kpi-tile{flex:1;padding:16px;border:1px solid #ddd;border-radius:8px;background:#fff}
.kpi-label{display:block;color:#666;font-size:.8rem}
.kpi-value{font-size:1.6rem;font-weight:600}
.warning{padding:16px;background:#fff3cd;border:1px solid #ffe69c;border-radius:8px}
select,input,button,textarea{width:100%;margin:4px 0 12px;padding:6px}
canvas{max-height:360px}
#model-plot{max-width:100%}
footer{visibility:hidden}
</style>
</head>
<body data-signals="{salesOverTime:[],topCustomers:[],topProducts:[],productLineTotals:[],recordCount:0,predictedSales:null}">
<aside>
<h3>{{.T.Filters}}</h3>
{{.Sidebar}}
<h3>{{.T.Feedback}}</h3>
<textarea id="feedback" rows="3"></textarea>
<button data-on-click="@post('/api/feedback', {body: {message: document.getElementById('feedback').value}})">Submit Feedback</button>
</aside>
<main>
<h1>{{.Title}}</h1>
{{.Body}}
</main>
<script>{{.Script}}</script>
</body>
</html>`

var pageTemplate = template.Must(template.New("page").Parse(pageLayout))

type pageData struct {
	Lang    string
	Title   string
	T       pageStrings
	Sidebar template.HTML
	Body    template.HTML
	Script  template.JS
}

type pageStrings struct {
	Filters  string
	Feedback string
}

// filterScript builds the shared query-string helper the datastar actions
// use when calling the SSE endpoints.
const filterScript = `
function selectedValues(id){return Array.from(document.getElementById(id).selectedOptions).map(o=>o.value)}
function filterQuery(){
  const p=new URLSearchParams();
  for(const [id,name] of [["product-lines","product_line"],["countries","country"],["statuses","status"],["quarters","quarter"]]){
    const el=document.getElementById(id);
    if(el) selectedValues(id).forEach(v=>p.append(name,v));
  }
  for(const id of ["start","end"]){
    const el=document.getElementById(id);
    if(el&&el.value) p.append(id,el.value);
  }
  const combine=document.getElementById("combine");
  if(combine) p.append("combine",combine.checked);
  const s=p.toString();
  return s?"?"+s:"";
}`

type PageHandlers struct {
	data       *services.Dataset
	translator *i18n.Translator
	logger     *slog.Logger
}

func NewPageHandlers(data *services.Dataset, translator *i18n.Translator, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		data:       data,
		translator: translator,
		logger:     logger,
	}
}

func (h *PageHandlers) options() models.FilterOptions {
	minDate, maxDate := services.DateBounds(h.data)
	return models.FilterOptions{
		ProductLines: services.DistinctValues(h.data, services.ColumnProductLine),
		Countries:    services.DistinctValues(h.data, services.ColumnCountry),
		Statuses:     services.DistinctValues(h.data, services.ColumnStatus),
		Quarters:     services.DistinctValues(h.data, services.ColumnQuarter),
		MinDate:      minDate.Format(dateParamLayout),
		MaxDate:      maxDate.Format(dateParamLayout),
	}
}

var sidebarTemplate = template.Must(template.New("sidebar").Parse(`
<label>Start date</label><input type="date" id="start" value="{{.Options.MinDate}}">
<label>End date</label><input type="date" id="end" value="{{.Options.MaxDate}}">
<label>Product lines</label>
<select id="product-lines" multiple>{{range .Options.ProductLines}}<option selected>{{.}}</option>{{end}}</select>
<label>Select Countries</label>
<select id="countries" multiple>{{range .Options.Countries}}<option>{{.}}</option>{{end}}</select>
<label>Select Order Statuses</label>
<select id="statuses" multiple>{{range .Options.Statuses}}<option>{{.}}</option>{{end}}</select>
{{if .Live}}
<button data-on-click="@get('/sse/dashboard'+filterQuery())">Apply</button>
{{else}}
<button data-on-click="@get('/sse/dashboard'+filterQuery())">Search</button>
{{end}}`))

var predictSidebarTemplate = template.Must(template.New("predictSidebar").Parse(`
<label>Product</label>
<select id="product-lines">{{range .Options.ProductLines}}<option>{{.}}</option>{{end}}</select>
<label>Country</label>
<select id="countries">{{range .Options.Countries}}<option>{{.}}</option>{{end}}</select>
<label>Quarter</label>
<select id="quarters">{{range .Options.Quarters}}<option>{{.}}</option>{{end}}</select>
<button data-on-click="@get('/sse/predict'+filterQuery())">Apply Filters</button>
<h3>Make a Prediction</h3>
<label>Enter Ordered Quantity</label><input type="number" id="quantity" min="0" value="35">
<label>Enter Price for Each</label><input type="number" id="price" min="0" step="0.01" value="83.66">
<button data-on-click="@get('/sse/predict'+filterQuery()+'&quantity='+document.getElementById('quantity').value+'&price='+document.getElementById('price').value)">Predict Sales</button>
<div data-show="$predictedSales !== null">Predicted Sales: $<span data-text="$predictedSales.toFixed(2)"></span></div>`))

const dashboardBody = `
<div id="kpi-tiles" class="kpi-row" data-on-load="@get('/sse/dashboard'+filterQuery())"></div>
<label><input type="checkbox" id="combine" checked style="width:auto" data-on-change="@get('/sse/dashboard'+filterQuery())"> Combine Product Lines</label>
<h2>Sales by Product Line Over Time</h2>
<canvas id="sales-over-time" data-on-signal-patch="renderCharts($salesOverTime, $topCustomers, $topProducts, $productLineTotals)"></canvas>
<div class="kpi-row">
<div class="kpi-tile"><h3>Top 10 Customers</h3><canvas id="top-customers"></canvas></div>
<div class="kpi-tile"><h3>Top 10 Products by Sales</h3><canvas id="top-products"></canvas></div>
<div class="kpi-tile"><h3>Total Sales by Product Line</h3><canvas id="product-line-totals"></canvas></div>
</div>
<h2>Export Data</h2>
<p>
<a data-attr-href="'/api/export.csv'+filterQuery()" href="/api/export.csv">📥 Download Filtered Data (CSV)</a> ·
<a data-attr-href="'/api/export.xlsx'+filterQuery()" href="/api/export.xlsx">Download Filtered Data (XLSX)</a>
</p>`

const predictBody = `
<div id="model-metrics" class="kpi-row" data-on-load="@get('/sse/predict'+filterQuery())"></div>
<h2>Model Visualizations</h2>
<img id="model-plot" src="" alt="Model diagnostics">
<p>This model uses a random forest regressor to predict sales based on order details.</p>`

const chartScript = filterScript + `
const charts={};
function upsert(id,type,labels,values,label){
  if(charts[id]) charts[id].destroy();
  charts[id]=new Chart(document.getElementById(id),{type,data:{labels,datasets:[{label,data:values,fill:type==="line"}]},options:{responsive:true}});
}
function renderCharts(over,customers,products,lines){
  upsert("sales-over-time","line",over.map(p=>p.product_line?p.date+" "+p.product_line:p.date),over.map(p=>p.sales),"Sales");
  upsert("top-customers","bar",customers.map(c=>c.customer_name),customers.map(c=>c.sales),"Sales");
  upsert("top-products","bar",products.map(p=>p.product_code),products.map(p=>p.sales),"Sales");
  upsert("product-line-totals","bar",lines.map(l=>l.product_line),lines.map(l=>l.sales),"Sales");
}
`

func (h *PageHandlers) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (h *PageHandlers) sidebar(live bool) template.HTML {
	var sb strings.Builder
	if err := sidebarTemplate.Execute(&sb, struct {
		Options models.FilterOptions
		Live    bool
	}{h.options(), live}); err != nil {
		h.logger.Error("render sidebar", "error", err)
		return ""
	}
	return template.HTML(sb.String())
}

// HandleToyStore serves the localized toy-store dashboard with an explicit
// Search action.
func (h *PageHandlers) HandleToyStore(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{
		Lang:    h.translator.Language(),
		Title:   h.translator.T("Toy Store Sales Dashboard"),
		T:       h.strings(),
		Sidebar: h.sidebar(false),
		Body:    dashboardBody,
		Script:  chartScript,
	})
}

// HandleTransportation serves the transportation variant, which recomputes
// live on every filter change.
func (h *PageHandlers) HandleTransportation(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{
		Lang:    "en",
		Title:   "Transportation Sales Dashboard",
		T:       pageStrings{Filters: "Filters", Feedback: "Your Feedback"},
		Sidebar: h.sidebar(true),
		Body:    dashboardBody,
		Script:  chartScript,
	})
}

// HandlePredict serves the prediction page.
func (h *PageHandlers) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var sb strings.Builder
	if err := predictSidebarTemplate.Execute(&sb, struct {
		Options models.FilterOptions
	}{h.options()}); err != nil {
		h.logger.Error("render predict sidebar", "error", err)
	}

	h.render(w, pageData{
		Lang:    "en",
		Title:   "Sales Prediction Dashboard",
		T:       pageStrings{Filters: "Filter Data", Feedback: "Your Feedback"},
		Sidebar: template.HTML(sb.String()),
		Body:    predictBody,
		Script:  filterScript,
	})
}

func (h *PageHandlers) strings() pageStrings {
	return pageStrings{
		Filters:  h.translator.T("Filters"),
		Feedback: h.translator.T("Your Feedback"),
	}
}
