package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出电子表格
// GET /api/v1/export/:id/excel（:id 为 active 时导出活动版本）
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	id, ok := timetableParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportSpreadsheet(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportPDF 导出分页文档
// GET /api/v1/export/:id/pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	id, ok := timetableParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, contentTypePDF, filename, buf.Bytes())
}

// ExportICS 导出日历订阅
// GET /api/v1/export/:id/ics?division_id=xxx
func (h *ExportHandler) ExportICS(c *gin.Context) {
	id, ok := timetableParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), id, c.Query("division_id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.File(c, contentTypeICS, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if writeTimetableError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportDivisionAbsent):
		response.NotFound(c, 16101, "班级不属于该课表版本")
	default:
		response.InternalError(c)
	}
}
