package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/pantry/backend/internal/application/ledger"
	"github.com/pantry/backend/internal/interfaces/http/dto"
	"github.com/pantry/backend/internal/interfaces/http/middleware"
)

// LedgerHandler handles stock movement endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/ledger/entries")
	entries.POST("", h.Record)
	entries.GET("", h.List)
	entries.DELETE("/:id", h.Delete)

	rg.POST("/ledger/snapshots", h.ImportSnapshots)
}

// Record handles POST /api/v1/ledger/entries
func (h *LedgerHandler) Record(c *gin.Context) {
	var req ledgerapp.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.ledgerService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /api/v1/ledger/entries
func (h *LedgerHandler) List(c *gin.Context) {
	var filter ledgerapp.ListEntriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list query: "+err.Error())
		return
	}

	entries, err := h.ledgerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ImportSnapshots handles POST /api/v1/ledger/snapshots. Cumulative
// balance snapshots are normalized into tagged delta entries and
// stored; the response carries how many entries were created.
func (h *LedgerHandler) ImportSnapshots(c *gin.Context) {
	var req ledgerapp.ImportSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	imported, err := h.ledgerService.ImportSnapshots(c.Request.Context(), req.ToSnapshots())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ledgerapp.ImportSnapshotsResponse{Imported: imported})
}

// Delete handles DELETE /api/v1/ledger/entries/:id
func (h *LedgerHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
