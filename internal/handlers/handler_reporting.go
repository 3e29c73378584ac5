package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/accounts/:id/balance", h.getAccountBalance)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Totals posted debits and credits per account for entries dated within [start, end]
// @Tags reports
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "TrialBalance", err)
		return
	}

	start, err := dto.ParseDate(params.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := dto.ParseDate(params.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("start", params.Start), slog.String("end", params.End))
	report, err := h.reportingService.TrialBalance(c.Request.Context(), start.Time, end.Time)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated", slog.Int("row_count", len(report.Rows)), slog.Bool("balanced", report.Balanced))
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Reports assets, liabilities and equity as of a date, with an optional comparison column
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Param compareTo query string false "Comparison date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "BalanceSheet", err)
		return
	}

	asOf, ok := queryDate(c, logger, "asOf")
	if !ok {
		return
	}

	var compareTo *time.Time
	if params.CompareTo != "" {
		d, err := dto.ParseDate(params.CompareTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		compareTo = &d.Time
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf, compareTo)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet report")
		return
	}

	if !report.Balanced {
		logger.Error("Balance sheet does not balance",
			slog.String("imbalance", report.Totals.Imbalance.String()),
			slog.String("as_of", asOf.Format("2006-01-02")))
	}
	c.JSON(http.StatusOK, report)
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Posted balance of one account as of a date
// @Tags reports
// @Produce json
// @Param id path string true "Account ID"
// @Param asOf query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.AccountBalance
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /reports/accounts/{id}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	asOf, ok := queryDate(c, logger, "asOf")
	if !ok {
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to compute account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}
