package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krishpatel1827/EduSync/internal/api/middleware"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

// activeAlias 路径中以 "active" 指代当前活动版本
const activeAlias = "active"

// idParam 描述一类资源的路径 ID：缺失时的提示与格式非法时按“不存在”返回的业务码
type idParam struct {
	notFoundCode int
	emptyMsg     string
	notFoundMsg  string
}

var (
	timetableID = idParam{17001, "课表版本ID不能为空", "课表版本不存在"}
	entryID     = idParam{18001, "排课ID不能为空", "排课记录不存在"}
	subjectID   = idParam{19001, "科目ID不能为空", "科目不存在"}
	facultyID   = idParam{19002, "教师ID不能为空", "教师不存在"}
	roomID      = idParam{19003, "教室ID不能为空", "教室不存在"}
)

// MustID 读取 :id 路径参数
// 为空时 400；不是合法 UUID 时直接按资源不存在返回 404，不再查询数据库
func MustID(c *gin.Context, kind idParam) (string, bool) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, kind.emptyMsg)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(c, kind.notFoundCode, kind.notFoundMsg)
		return "", false
	}
	return id, true
}

// timetableParam 读取版本 ID；"active" 转换为空串（由 Service 取活动版本）
func timetableParam(c *gin.Context) (string, bool) {
	if c.Param("id") == activeAlias {
		return "", true
	}
	return MustID(c, timetableID)
}

// MustBindJSON 绑定 JSON 请求体；失败时写入 413 或 400 响应并返回 false
func MustBindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.PayloadTooLarge(c)
			return false
		}
		response.BadRequest(c, 10001, "参数校验失败")
		return false
	}
	return true
}
