package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries and opening balances.
type journalHandler struct {
	journalService        portssvc.JournalSvcFacade
	openingBalanceService portssvc.OpeningBalanceSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, obs portssvc.OpeningBalanceSvc) *journalHandler {
	return &journalHandler{journalService: js, openingBalanceService: obs}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, openingBalanceService portssvc.OpeningBalanceSvc) {
	h := newJournalHandler(journalService, openingBalanceService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.POST("/drafts", h.createDraft)
		entries.POST("/validate", h.validateEntry)
		entries.GET("", h.listEntries)
		entries.GET("/by-reference/:reference", h.getEntryByReference)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/post", h.postDraft)
		entries.POST("/:id/void", h.voidEntry)
		entries.PUT("/:id", h.editEntry)
	}

	rg.POST("/opening-balances", h.postOpeningBalances)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates, converts to the base currency and posts a balanced entry in one step
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostJournalEntryRequest true "Entry with its lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]interface{} "Entry rejected, with reason and lineIndex"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "PostEntry", err)
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// createDraft godoc
// @Summary Save a draft journal entry
// @Description Stores an entry without posting it. Drafts never affect balances.
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostJournalEntryRequest true "Entry with its lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]interface{} "Entry rejected"
// @Failure 500 {object} map[string]string "Failed to create draft"
// @Security BearerAuth
// @Router /journal-entries/drafts [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateDraft", err)
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateDraft(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create draft")
		return
	}

	logger.Info("Draft journal entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// validateEntry godoc
// @Summary Dry-run validation of a journal entry
// @Description Runs every posting check without writing anything
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostJournalEntryRequest true "Entry with its lines"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to validate"
// @Security BearerAuth
// @Router /journal-entries/validate [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "ValidateEntry", err)
		return
	}

	err := h.journalService.ValidateEntry(c.Request.Context(), req)
	var vErr *apperrors.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ValidationResultResponse{Valid: true})
	case errors.As(err, &vErr):
		result := dto.ValidationResultResponse{Reason: string(vErr.Reason), Message: vErr.Message}
		if vErr.LineIndex >= 0 {
			idx := vErr.LineIndex
			result.LineIndex = &idx
		}
		c.JSON(http.StatusOK, result)
	default:
		respondError(c, logger, err, "Failed to validate journal entry")
	}
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers newest first with token pagination
// @Tags journal entries
// @Produce  json
// @Param   status query string false "DRAFT, POSTED or VOID"
// @Param   from query string false "Earliest entry date (YYYY-MM-DD)"
// @Param   to query string false "Latest entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "ListEntries", err)
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getEntryByReference godoc
// @Summary Get a journal entry by reference
// @Tags journal entries
// @Produce  json
// @Param   reference path string true "Entry reference, e.g. JE-2024-000001"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/by-reference/{reference} [get]
func (h *journalHandler) getEntryByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("reference", c.Param("reference")))

	entry, err := h.journalService.GetEntryByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postDraft godoc
// @Summary Post a draft journal entry
// @Tags journal entries
// @Produce  json
// @Param   id path string true "Draft entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 422 {object} map[string]interface{} "Entry rejected"
// @Failure 500 {object} map[string]string "Failed to post draft"
// @Security BearerAuth
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.PostDraft(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to post draft")
		return
	}

	logger.Info("Draft posted", slog.String("reference", entry.Reference))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Excludes the entry from balances. Lines are kept; the change is recorded in the audit log.
// @Tags journal entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 500 {object} map[string]string "Failed to void journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// editEntry godoc
// @Summary Replace the lines of a journal entry
// @Description Re-validates and replaces every line of a draft or posted entry. Edits of posted entries are audited.
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.EditJournalEntryRequest true "Replacement lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is void"
// @Failure 422 {object} map[string]interface{} "Entry rejected"
// @Failure 500 {object} map[string]string "Failed to edit journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalHandler) editEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("id")))
	var req dto.EditJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "EditEntry", err)
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.EditEntry(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to edit journal entry")
		return
	}

	logger.Info("Journal entry edited", slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postOpeningBalances godoc
// @Summary Post opening balances
// @Description Seeds account balances with one OPENING entry balanced against the opening balance equity account
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   request body dto.PostOpeningBalancesRequest true "Seed balances"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]interface{} "Entry rejected"
// @Failure 500 {object} map[string]string "Failed to post opening balances"
// @Security BearerAuth
// @Router /opening-balances [post]
func (h *journalHandler) postOpeningBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostOpeningBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "PostOpeningBalances", err)
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.openingBalanceService.PostOpeningBalances(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to post opening balances")
		return
	}

	logger.Info("Opening balances posted", slog.String("reference", entry.Reference), slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
