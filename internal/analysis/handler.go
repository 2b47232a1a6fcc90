package analysis

import (
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/bodega-labs/bodega/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the analysis endpoints. adminOnly guards the
// trigger surface: vendedores can sell, only admins run the analysis.
func (s *Service) RegisterRoutes(r gin.IRouter, adminOnly gin.HandlerFunc) {
	r.POST("/v1/analysis/run", adminOnly, s.RunHandler)
	r.GET("/v1/analysis/report", s.ReportHandler)
	r.POST("/v1/analysis/export", adminOnly, s.ExportHandler)
}

// RunHandler handles POST /v1/analysis/run. Blocks until the run completes;
// responds with the formatted text report.
func (s *Service) RunHandler(c *gin.Context) {
	report, err := s.Run(c.Request.Context())
	if err != nil {
		var connErr *ConnectivityError
		if errors.As(err, &connErr) {
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailable,
				Message:   connErr.Error(),
			})
			return
		}

		slog.Error("Analysis run failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpAnalysisFailedError,
			Message:   "Analysis run failed",
			Details:   err.Error(),
		})
		return
	}

	c.String(http.StatusOK, report)
}

// ReportHandler handles GET /v1/analysis/report: the last successful report.
func (s *Service) ReportHandler(c *gin.Context) {
	report, runAt, ok := s.LastReport()
	if !ok {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNoResultsError,
			Message:   "No results to show. Run the analysis first.",
		})
		return
	}

	c.Header("Last-Modified", runAt.UTC().Format(http.TimeFormat))
	c.String(http.StatusOK, report)
}

// ExportHandler handles POST /v1/analysis/export: writes the CSV file and
// reports its path. Export before any run is a warning, not an empty file.
func (s *Service) ExportHandler(c *gin.Context) {
	path, err := s.ExportFile()
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			c.JSON(http.StatusConflict, httperr.ErrorResponse{
				ErrorType: httperr.HttpNoResultsError,
				Message:   "No results to export. Run the analysis first.",
			})
			return
		}

		slog.Error("Report export failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Could not export the report",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "exported", "file": path})
}
