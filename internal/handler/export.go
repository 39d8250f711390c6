package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"petition-backend/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	store export.Store
}

func NewExportHandler(store export.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export handles GET /api/export.xlsx. Authentication and the admin check are
// enforced by middleware before this runs.
func (h *ExportHandler) Export(c *gin.Context) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="petitions.xlsx"`)

	if err := export.WriteXLSX(c.Request.Context(), h.store, c.Writer); err != nil {
		log.Printf("Export error: %v", err)
		c.String(http.StatusInternalServerError, "Server error")
	}
}
