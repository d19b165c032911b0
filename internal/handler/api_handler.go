package handler

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"population-dashboard-go/internal/export"
	"population-dashboard-go/internal/service"
	"population-dashboard-go/pkg/model"
)

// APIHandler serves the dashboard data as JSON
type APIHandler struct {
	dashboardService *service.DashboardService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(dashboardService *service.DashboardService) *APIHandler {
	return &APIHandler{
		dashboardService: dashboardService,
	}
}

// Health handles GET /healthz
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"countries": h.dashboardService.Len(),
	})
}

// GetContinents handles GET /api/continents
func (h *APIHandler) GetContinents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"continents": h.dashboardService.Continents()})
}

// GetCountries handles GET /api/countries
func (h *APIHandler) GetCountries(c *gin.Context) {
	continent := continentParam(c)
	c.JSON(http.StatusOK, gin.H{
		"continent": continent,
		"countries": h.dashboardService.Countries(continent),
	})
}

// GetCountry handles GET /api/countries/:name
func (h *APIHandler) GetCountry(c *gin.Context) {
	country, err := h.dashboardService.Country(c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch country"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"country":    country,
		"age_shares": service.AgeShares(country),
	})
}

// GetSummary handles GET /api/summary
func (h *APIHandler) GetSummary(c *gin.Context) {
	continent := continentParam(c)
	c.JSON(http.StatusOK, gin.H{
		"continent": continent,
		"summary":   h.dashboardService.Summary(continent),
	})
}

// GetRankings handles GET /api/rankings
func (h *APIHandler) GetRankings(c *gin.Context) {
	metric, err := service.ParseMetric(c.Query("metric"), model.MetricPopulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := c.DefaultQuery("order", "top")
	if order != "top" && order != "bottom" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be top or bottom"})
		return
	}

	n := service.DefaultRankingSize
	if raw := c.Query("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ranking size"})
			return
		}
	}

	ranking, err := h.dashboardService.Ranking(continentParam(c), metric, order, n)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// GetMap handles GET /api/map
func (h *APIHandler) GetMap(c *gin.Context) {
	metric, err := service.ParseMetric(c.Query("metric"), model.MetricPopulation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.dashboardService.Map(continentParam(c), metric)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCompare handles GET /api/compare
func (h *APIHandler) GetCompare(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Compare(selection(c)))
}

// ExportCompare handles GET /api/compare/export
func (h *APIHandler) ExportCompare(c *gin.Context) {
	resp := h.dashboardService.Compare(selection(c))

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, resp.Rows); err != nil {
		log.Printf("[EXPORT] Failed to build workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export comparison"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="comparison.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func continentParam(c *gin.Context) string {
	continent := strings.TrimSpace(c.Query("continent"))
	if continent == "" {
		return model.AllContinents
	}
	return continent
}

// selection returns the countries chosen for comparison. Without any country
// parameter (and no submitted form) the default comparison is used.
func selection(c *gin.Context) []string {
	raw, ok := c.GetQueryArray("country")
	if !ok && c.Query("submitted") == "" {
		return service.DefaultComparison
	}

	names := make([]string, 0, len(raw))
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
