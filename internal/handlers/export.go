package handlers

import (
	"net/http"

	"github.com/barberscore/registry/internal/middleware"
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Persons streams the person roster as an XLSX download
func (h *ExportHandler) Persons(c *gin.Context) {
	h.export(c, "persons.xlsx", h.exportService.PersonsWorkbook)
}

// Groups streams the group roster as an XLSX download
func (h *ExportHandler) Groups(c *gin.Context) {
	h.export(c, "groups.xlsx", h.exportService.GroupsWorkbook)
}

func (h *ExportHandler) export(c *gin.Context, filename string, build func(*models.User) (*excelize.File, error)) {
	actor := middleware.GetActor(c)

	f, err := build(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
