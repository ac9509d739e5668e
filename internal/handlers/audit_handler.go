package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/repository"
)

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AuditHandler serves the read-only operator audit API: run history and
// identity-map inspection. It never writes anything.
type AuditHandler struct {
	runs  repository.RunRepository
	store identity.Store
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(runs repository.RunRepository, store identity.Store) *AuditHandler {
	return &AuditHandler{
		runs:  runs,
		store: store,
	}
}

// ListRuns returns the run audit log, newest first
// GET /api/v1/runs?entity=&scope=&status=&page=&limit=
func (h *AuditHandler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, total, err := h.runs.List(c.Request.Context(), repository.RunFilters{
		EntityType: c.Query("entity"),
		Scope:      c.Query("scope"),
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list runs",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  recs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetRun returns one run audit record
// GET /api/v1/runs/:id
func (h *AuditHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid run ID",
			Message: "run ID must be a UUID",
		})
		return
	}

	rec, err := h.runs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch run",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetIdentityMap dumps one persisted identity map for auditing
// GET /api/v1/maps/:entity?scope=
func (h *AuditHandler) GetIdentityMap(c *gin.Context) {
	entityType := c.Param("entity")
	scope := c.Query("scope")
	if scope == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Missing scope",
			Message: "scope query parameter is required",
		})
		return
	}

	m, err := h.store.Load(c.Request.Context(), entityType, scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to load identity map",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entityType": entityType,
		"scope":      scope,
		"count":      m.Len(),
		"sourceIds":  m.SourceIDs(),
		"entries":    m.Entries(),
	})
}

// Health returns service health
// GET /health
func (h *AuditHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "migration-service"})
}
