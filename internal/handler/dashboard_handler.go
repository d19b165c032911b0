package handler

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"population-dashboard-go/internal/service"
	"population-dashboard-go/pkg/model"
)

// DashboardHandler renders the four dashboard pages
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

type metricOption struct {
	Value    model.Metric
	Label    string
	Selected bool
}

func metricOptions(selected model.Metric) []metricOption {
	opts := make([]metricOption, 0, len(model.MapMetrics))
	for _, m := range model.MapMetrics {
		opts = append(opts, metricOption{Value: m, Label: m.Label(), Selected: m == selected})
	}
	return opts
}

type chartImage struct {
	Title string
	URL   template.URL
}

func linkURL(path string, q url.Values) template.URL {
	if len(q) == 0 {
		return template.URL(path)
	}
	return template.URL(path + "?" + q.Encode())
}

func (h *DashboardHandler) continentOptions() []string {
	return append([]string{model.AllContinents}, h.dashboardService.Continents()...)
}

// Overview handles GET / and GET /overview
func (h *DashboardHandler) Overview(c *gin.Context) {
	metric, err := service.ParseMetric(c.Query("metric"), model.MetricPopulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	continent := continentParam(c)
	view, err := h.dashboardService.Overview(continent, metric)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "overview.html", gin.H{
		"Tab":        "overview",
		"Title":      "Global Overview",
		"Continents": h.continentOptions(),
		"Continent":  continent,
		"Metrics":    metricOptions(metric),
		"Metric":     metric,
		"MapURL":     "/api/map?" + url.Values{"metric": {string(metric)}, "continent": {continent}}.Encode(),
		"View":       view,
	})
}

// DeepDive handles GET /deep-dive
func (h *DashboardHandler) DeepDive(c *gin.Context) {
	continent := continentParam(c)
	view := h.dashboardService.DeepDive(continent)

	q := url.Values{"continent": {continent}}
	c.HTML(http.StatusOK, "deep_dive.html", gin.H{
		"Tab":        "deep-dive",
		"Title":      "Demographic Deep-Dive",
		"Continents": h.continentOptions(),
		"Continent":  continent,
		"Empty":      len(view.AgeStructure) == 0,
		"Charts": []chartImage{
			{Title: "Age Structure: Young vs. Old Population", URL: linkURL("/charts/age-structure", q)},
			{Title: "Distribution of Sex Ratios", URL: linkURL("/charts/sex-ratio", q)},
			{Title: "Population vs. Population Density", URL: linkURL("/charts/density", q)},
		},
	})
}

// Country handles GET /country
func (h *DashboardHandler) Country(c *gin.Context) {
	view := h.dashboardService.CountryProfile(continentParam(c), c.Query("country"))

	data := gin.H{
		"Tab":   "country",
		"Title": "Country-Specific Analysis",
		"View":  view,
	}
	if view.Country != nil {
		data["AgeChart"] = linkURL("/charts/country/"+url.PathEscape(view.Country.Country)+"/age", nil)
	}
	c.HTML(http.StatusOK, "country.html", data)
}

// Compare handles GET /compare
func (h *DashboardHandler) Compare(c *gin.Context) {
	view := h.dashboardService.Compare(selection(c))

	selected := make(map[string]bool, len(view.Selected))
	q := url.Values{"submitted": {"1"}}
	for _, name := range view.Selected {
		selected[name] = true
		q.Add("country", name)
	}

	charts := make([]chartImage, 0, len(model.MapMetrics))
	for _, m := range model.MapMetrics {
		charts = append(charts, chartImage{
			Title: "Comparison of " + m.Label(),
			URL:   linkURL("/charts/compare/"+string(m), q),
		})
	}

	c.HTML(http.StatusOK, "compare.html", gin.H{
		"Tab":       "compare",
		"Title":     "Country Comparison",
		"Countries": h.dashboardService.Countries(model.AllContinents),
		"Selected":  selected,
		"View":      view,
		"Charts":    charts,
		"ExportURL": linkURL("/api/compare/export", q),
	})
}
