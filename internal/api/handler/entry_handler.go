package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

// EntryHandler 排课模块 HTTP 处理器
type EntryHandler struct {
	entrySvc service.EntryService
}

// NewEntryHandler 创建 EntryHandler
func NewEntryHandler(entrySvc service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// CreateEntry 新增排课
// POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !MustBindJSON(c, &req) {
		return
	}

	entry, err := h.entrySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, entry)
}

// UpdateEntry 更新排课的科目/教师/教室
// PUT /api/v1/entries/:id
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := MustID(c, entryID)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if !MustBindJSON(c, &req) {
		return
	}

	entry, err := h.entrySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteEntry 删除排课
// DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := MustID(c, entryID)
	if !ok {
		return
	}

	if err := h.entrySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListEntries 列出某版本的全部排课
// GET /api/v1/timetables/:id/entries
func (h *EntryHandler) ListEntries(c *gin.Context) {
	id, ok := MustID(c, timetableID)
	if !ok {
		return
	}

	entries, err := h.entrySvc.List(c.Request.Context(), id)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

func (h *EntryHandler) handleEntryError(c *gin.Context, err error) {
	if writeTimetableError(c, err) || writeCatalogError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 18001, "排课记录不存在")
	case errors.Is(err, service.ErrEntryDuplicate):
		response.Conflict(c, 18002, "该单元格已有排课")
	case errors.Is(err, service.ErrEntryDayInvalid):
		response.BadRequest(c, 18003, "星期必须为 MON~SAT")
	case errors.Is(err, service.ErrEntrySlotMismatch):
		response.BadRequest(c, 18004, "节次不属于该课表版本")
	case errors.Is(err, service.ErrEntryDivisionMismatch):
		response.BadRequest(c, 18005, "班级不属于该课表版本")
	default:
		response.InternalError(c)
	}
}
