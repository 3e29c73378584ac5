package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditReaderSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditReaderSvc) {
	h := &auditHandler{auditService: auditService}

	audit := rg.Group("/audit-log")
	{
		audit.GET("", h.listRecords)
		audit.GET("/verify", h.verify)
	}
}

// listRecords godoc
// @Summary Browse the activity log
// @Tags audit
// @Produce json
// @Param subjectType query string false "journal_entry or account"
// @Param subjectID query string false "Subject ID"
// @Param afterID query int false "Return records after this id" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.ListAuditRecordsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list audit records"
// @Security BearerAuth
// @Router /audit-log [get]
func (h *auditHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListAuditRecords", err)
		return
	}

	resp, err := h.auditService.ListRecords(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit records")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verify godoc
// @Summary Verify the audit hash chain
// @Description Recomputes every hash in [from, to] and reports the first broken link
// @Tags audit
// @Produce json
// @Param from query int false "First record id" default(0)
// @Param to query int false "Last record id" default(0)
// @Success 200 {object} domain.ChainVerification
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to verify audit chain"
// @Security BearerAuth
// @Router /audit-log/verify [get]
func (h *auditHandler) verify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.VerifyAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "VerifyAudit", err)
		return
	}

	result, err := h.auditService.Verify(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to verify audit chain")
		return
	}

	if !result.Valid && result.BrokenAtID != nil {
		logger.Error("Audit chain verification failed", slog.Int64("broken_at_id", *result.BrokenAtID), slog.String("reason", result.Reason))
	}
	c.JSON(http.StatusOK, result)
}
