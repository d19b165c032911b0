package handler

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"population-dashboard-go/internal/chart"
	"population-dashboard-go/internal/format"
	"population-dashboard-go/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouterConfig holds the HTTP settings of the dashboard
type RouterConfig struct {
	AllowedOrigins []string
	ChartFormat    chart.Format
}

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(format.FuncMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// NewRouter wires every dashboard route onto a gin engine
func NewRouter(dashboardService *service.DashboardService, cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:8501"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	if cfg.ChartFormat == "" {
		cfg.ChartFormat = chart.SVG
	}

	dashboardHandler := NewDashboardHandler(dashboardService)
	chartHandler := NewChartHandler(dashboardService, cfg.ChartFormat)
	apiHandler := NewAPIHandler(dashboardService)

	router.GET("/healthz", apiHandler.Health)

	// Pages
	router.GET("/", dashboardHandler.Overview)
	router.GET("/overview", dashboardHandler.Overview)
	router.GET("/deep-dive", dashboardHandler.DeepDive)
	router.GET("/country", dashboardHandler.Country)
	router.GET("/compare", dashboardHandler.Compare)

	// Chart images
	charts := router.Group("/charts")
	{
		charts.GET("/age-structure", chartHandler.AgeStructure)
		charts.GET("/sex-ratio", chartHandler.SexRatio)
		charts.GET("/density", chartHandler.Density)
		charts.GET("/country/:name/age", chartHandler.CountryAge)
		charts.GET("/compare/:metric", chartHandler.Compare)
	}

	// JSON
	api := router.Group("/api")
	{
		api.GET("/continents", apiHandler.GetContinents)
		api.GET("/countries", apiHandler.GetCountries)
		api.GET("/countries/:name", apiHandler.GetCountry)
		api.GET("/summary", apiHandler.GetSummary)
		api.GET("/rankings", apiHandler.GetRankings)
		api.GET("/map", apiHandler.GetMap)
		api.GET("/compare", apiHandler.GetCompare)
		api.GET("/compare/export", apiHandler.ExportCompare)
	}

	return router, nil
}
