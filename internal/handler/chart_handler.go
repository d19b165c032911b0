package handler

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"population-dashboard-go/internal/chart"
	"population-dashboard-go/internal/service"
	"population-dashboard-go/pkg/model"
)

// ChartHandler renders chart images for the dashboard pages
type ChartHandler struct {
	dashboardService *service.DashboardService
	format           chart.Format
}

// NewChartHandler creates a new chart handler with a default image format
func NewChartHandler(dashboardService *service.DashboardService, format chart.Format) *ChartHandler {
	return &ChartHandler{
		dashboardService: dashboardService,
		format:           format,
	}
}

// render writes a chart image, answering 204 when the chart has nothing to draw
func (h *ChartHandler) render(c *gin.Context, name string, draw func(io.Writer, chart.Format) error) {
	f := chart.ParseFormat(c.Query("format"), h.format)

	var buf bytes.Buffer
	if err := draw(&buf, f); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			c.Status(http.StatusNoContent)
			return
		}
		log.Printf("[CHART] Failed to render %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

// AgeStructure handles GET /charts/age-structure
func (h *ChartHandler) AgeStructure(c *gin.Context) {
	view := h.dashboardService.DeepDive(continentParam(c))
	h.render(c, "age structure", func(w io.Writer, f chart.Format) error {
		return chart.AgeStructure(w, view.AgeStructure, f)
	})
}

// SexRatio handles GET /charts/sex-ratio
func (h *ChartHandler) SexRatio(c *gin.Context) {
	view := h.dashboardService.DeepDive(continentParam(c))
	h.render(c, "sex ratio", func(w io.Writer, f chart.Format) error {
		return chart.SexRatio(w, view.SexRatios, f)
	})
}

// Density handles GET /charts/density
func (h *ChartHandler) Density(c *gin.Context) {
	view := h.dashboardService.DeepDive(continentParam(c))
	h.render(c, "density", func(w io.Writer, f chart.Format) error {
		return chart.Density(w, view.Density, f)
	})
}

// CountryAge handles GET /charts/country/:name/age
func (h *ChartHandler) CountryAge(c *gin.Context) {
	country, err := h.dashboardService.Country(c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country"})
		return
	}

	title := "Population Age Structure for " + country.Country
	h.render(c, "country age", func(w io.Writer, f chart.Format) error {
		return chart.AgeDonut(w, service.AgeShares(country), title, f)
	})
}

// Compare handles GET /charts/compare/:metric
func (h *ChartHandler) Compare(c *gin.Context) {
	metric, err := service.ParseMetric(c.Param("metric"), model.MetricPopulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.dashboardService.Compare(selection(c))
	h.render(c, "comparison", func(w io.Writer, f chart.Format) error {
		return chart.Comparison(w, view.Rows, metric, f)
	})
}
