package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tasktrail/tasktrail/internal/models"
)

// defaultAuditPageSize is the page size used when the limit parameter
// is absent or invalid.
const defaultAuditPageSize = 10

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	repo AuditRepository
	log  *logrus.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(repo AuditRepository, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, log: log}
}

// List handles GET /api/v1/audit.
func (h *AuditHandler) List(c *gin.Context) {
	opts := models.AuditQueryOpts{
		Page:  parsePositiveInt(c.Query("page"), 1),
		Limit: parseLimit(c.Query("limit"), defaultAuditPageSize),
	}

	entries, total, err := h.repo.ListEntries(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("listing audit entries")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	})
}
