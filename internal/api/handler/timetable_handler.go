package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

// landingPath 无活动课表时前端跳转的页面
const landingPath = "/"

// TimetableHandler 课表版本模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Setup 生成新的课表版本
// POST /api/v1/timetables/setup
func (h *TimetableHandler) Setup(c *gin.Context) {
	var req dto.SetupTimetableRequest
	if !MustBindJSON(c, &req) {
		return
	}

	tt, err := h.timetableSvc.Setup(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.Created(c, tt)
}

// GetSetupDefaults 生成表单预填值（请求中省略的字段按此取值）
// GET /api/v1/timetables/setup/defaults
func (h *TimetableHandler) GetSetupDefaults(c *gin.Context) {
	response.OK(c, h.timetableSvc.Defaults())
}

// ListTimetables 版本历史（最新在前，分页）
// GET /api/v1/timetables?page=1&page_size=20
func (h *TimetableHandler) ListTimetables(c *gin.Context) {
	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}
	page, pageSize := req.Normalize()

	list, total, err := h.timetableSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page, pageSize)
}

// GetTimetable 获取版本详情（含节次与班级）
// GET /api/v1/timetables/:id
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	id, ok := MustID(c, timetableID)
	if !ok {
		return
	}

	tt, err := h.timetableSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, tt)
}

// GetActiveTimetable 获取当前活动版本
// GET /api/v1/timetables/active
func (h *TimetableHandler) GetActiveTimetable(c *gin.Context) {
	tt, err := h.timetableSvc.GetActive(c.Request.Context())
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, tt)
}

// GetGrid 获取课表网格
// GET /api/v1/timetables/:id/grid
func (h *TimetableHandler) GetGrid(c *gin.Context) {
	id, ok := timetableParam(c)
	if !ok {
		return
	}

	grid, err := h.timetableSvc.GetGrid(c.Request.Context(), id)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, grid)
}

// GetActiveGrid 获取活动版本的课表网格；无活动版本时返回 17002 与落地页路径
// GET /api/v1/timetables/active/grid
func (h *TimetableHandler) GetActiveGrid(c *gin.Context) {
	grid, err := h.timetableSvc.GetGrid(c.Request.Context(), "")
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, grid)
}

// ActivateTimetable 重新激活历史版本
// PUT /api/v1/timetables/:id/activate
func (h *TimetableHandler) ActivateTimetable(c *gin.Context) {
	id, ok := MustID(c, timetableID)
	if !ok {
		return
	}

	if err := h.timetableSvc.Activate(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteTimetable 删除版本（级联删除节次、班级与排课）
// DELETE /api/v1/timetables/:id
func (h *TimetableHandler) DeleteTimetable(c *gin.Context) {
	id, ok := MustID(c, timetableID)
	if !ok {
		return
	}

	if err := h.timetableSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	if !writeTimetableError(c, err) {
		response.InternalError(c)
	}
}

// writeTimetableError 映射课表版本相关的业务错误；未识别时返回 false
func writeTimetableError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 17001, "课表版本不存在")
	case errors.Is(err, service.ErrNoActiveTimetable):
		response.NotFoundWithDetails(c, 17002, "当前没有活动课表", landingPath)
	case errors.Is(err, service.ErrSetupDivisionsEmpty):
		response.BadRequest(c, 17003, "班级列表不能为空")
	case errors.Is(err, service.ErrSetupDivisionNameTooLong):
		response.BadRequest(c, 17004, "班级名称不能超过 10 个字符")
	case errors.Is(err, service.ErrSetupStartTimeInvalid):
		response.BadRequest(c, 17005, "开始时间格式无效")
	case errors.Is(err, service.ErrSlotParamsInvalid):
		response.BadRequest(c, 17006, "节次参数无效")
	default:
		return false
	}
	return true
}
