package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

// CatalogHandler 参考数据（科目 / 教师 / 教室）HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ── 科目 ──

// ListSubjects GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	list, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateSubject POST /api/v1/subjects
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if !MustBindJSON(c, &req) {
		return
	}
	subject, err := h.catalogSvc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject PUT /api/v1/subjects/:id
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	id, ok := MustID(c, subjectID)
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !MustBindJSON(c, &req) {
		return
	}
	subject, err := h.catalogSvc.UpdateSubject(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, subject)
}

// DeleteSubject DELETE /api/v1/subjects/:id
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	id, ok := MustID(c, subjectID)
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteSubject(c.Request.Context(), id); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 教师 ──

// ListFaculties GET /api/v1/faculties
func (h *CatalogHandler) ListFaculties(c *gin.Context) {
	list, err := h.catalogSvc.ListFaculties(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateFaculty POST /api/v1/faculties
func (h *CatalogHandler) CreateFaculty(c *gin.Context) {
	var req dto.FacultyRequest
	if !MustBindJSON(c, &req) {
		return
	}
	faculty, err := h.catalogSvc.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, faculty)
}

// UpdateFaculty PUT /api/v1/faculties/:id
func (h *CatalogHandler) UpdateFaculty(c *gin.Context) {
	id, ok := MustID(c, facultyID)
	if !ok {
		return
	}
	var req dto.FacultyRequest
	if !MustBindJSON(c, &req) {
		return
	}
	faculty, err := h.catalogSvc.UpdateFaculty(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, faculty)
}

// DeleteFaculty DELETE /api/v1/faculties/:id
func (h *CatalogHandler) DeleteFaculty(c *gin.Context) {
	id, ok := MustID(c, facultyID)
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteFaculty(c.Request.Context(), id); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 教室 ──

// ListRooms GET /api/v1/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	list, err := h.catalogSvc.ListRooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateRoom POST /api/v1/rooms
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if !MustBindJSON(c, &req) {
		return
	}
	room, err := h.catalogSvc.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom PUT /api/v1/rooms/:id
func (h *CatalogHandler) UpdateRoom(c *gin.Context) {
	id, ok := MustID(c, roomID)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !MustBindJSON(c, &req) {
		return
	}
	room, err := h.catalogSvc.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, room)
}

// DeleteRoom DELETE /api/v1/rooms/:id
func (h *CatalogHandler) DeleteRoom(c *gin.Context) {
	id, ok := MustID(c, roomID)
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteRoom(c.Request.Context(), id); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	if !writeCatalogError(c, err) {
		response.InternalError(c)
	}
}

// writeCatalogError 映射参考数据相关的业务错误；未识别时返回 false
func writeCatalogError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 19001, "科目不存在")
	case errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, 19002, "教师不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 19003, "教室不存在")
	default:
		return false
	}
	return true
}
