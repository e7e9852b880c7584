package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/openbooks/backend/internal/application/report"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/openbooks/backend/internal/infrastructure/scheduler"
)

// ReportHandler serves the financial report endpoints. Report payloads go
// out as-is, not wrapped in the response envelope; the reporting frontend
// consumes the report shape directly.
type ReportHandler struct {
	BaseHandler
	reports   *reportapp.ReportService
	scheduler *scheduler.DailyScheduler
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService, sched *scheduler.DailyScheduler) *ReportHandler {
	return &ReportHandler{reports: reports, scheduler: sched}
}

// GetBalanceSheet handles GET /reports/balance-sheet
func (h *ReportHandler) GetBalanceSheet(c *gin.Context) {
	sheet, err := h.reports.GetBalanceSheet(c.Request.Context(), c.Query("time"), c.Query("basis"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// GetProfitAndLoss handles GET /reports/profit-loss
func (h *ReportHandler) GetProfitAndLoss(c *gin.Context) {
	customerID, ok := bindUUIDQuery(c, "customer_id")
	if !ok {
		h.BadRequest(c, "customer_id must be a valid UUID")
		return
	}

	result, err := h.reports.GetProfitAndLoss(c.Request.Context(), reportapp.ProfitLossQuery{
		Time:        c.Query("time"),
		Basis:       c.Query("basis"),
		CompareWith: c.Query("compare_with"),
		CustomerID:  customerID,
		SummaryOnly: strings.EqualFold(c.Query("summary_only"), "true"),
	})
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RunDailySummaries handles POST /reports/daily-summaries/run
func (h *ReportHandler) RunDailySummaries(c *gin.Context) {
	if err := h.scheduler.TriggerNow(c.Request.Context()); err != nil {
		h.InternalError(c, "Aggregation run failed")
		return
	}
	h.Success(c, gin.H{"status": "completed"})
}

// DailySummaryStatusResponse reports the scheduler state
type DailySummaryStatusResponse struct {
	NextRunAt       string `json:"next_run_at,omitempty"`
	LastStatus      string `json:"last_status,omitempty"`
	LastTrigger     string `json:"last_trigger,omitempty"`
	LastStartedAt   string `json:"last_started_at,omitempty"`
	LastCompletedAt string `json:"last_completed_at,omitempty"`
	LastError       string `json:"last_error,omitempty"`
}

// DailySummariesStatus handles GET /reports/daily-summaries/status
func (h *ReportHandler) DailySummariesStatus(c *gin.Context) {
	resp := DailySummaryStatusResponse{}
	if next := h.scheduler.NextRunAt(); !next.IsZero() {
		resp.NextRunAt = next.Format(time.RFC3339)
	}

	last, err := h.scheduler.LastRun(c.Request.Context())
	if err != nil {
		h.InternalError(c, "Failed to load aggregation status")
		return
	}
	if last != nil {
		resp.LastStatus = string(last.Status)
		resp.LastTrigger = last.Trigger
		resp.LastStartedAt = last.StartedAt.Format(time.RFC3339)
		if last.CompletedAt != nil {
			resp.LastCompletedAt = last.CompletedAt.Format(time.RFC3339)
		}
		resp.LastError = last.Error
	}
	h.Success(c, resp)
}

// handleReportError keeps the report error contract: an unsupported time
// window is a bare {"error": ...} body, everything else is internal.
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "INVALID_TIME_PARAM" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time parameter."})
		return
	}
	h.InternalError(c, "Failed to compute report")
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.GetBalanceSheet)
		reports.GET("/profit-loss", h.GetProfitAndLoss)
		reports.POST("/daily-summaries/run", h.RunDailySummaries)
		reports.GET("/daily-summaries/status", h.DailySummariesStatus)
	}
}
