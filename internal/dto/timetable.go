package dto

// ── 课表版本模块 DTO ──

// SetupTimetableRequest 生成课表结构请求
// 除 divisions 外均可省略，省略时取 timetable.default_* 配置；
// 节数允许为 0，因此用指针区分“省略”与“0”
type SetupTimetableRequest struct {
	Name                 string `json:"name"                   binding:"omitempty,max=100"`
	Divisions            string `json:"divisions"              binding:"required"`       // "D1, D2, D3"
	StartTime            string `json:"start_time"             binding:"omitempty,hhmm"` // "08:45"
	SlotDurationMinutes  int    `json:"slot_duration_minutes"  binding:"omitempty,min=1,max=600"`
	BreakDurationMinutes int    `json:"break_duration_minutes" binding:"omitempty,min=1,max=600"`
	SlotsBeforeBreak     *int   `json:"slots_before_break"     binding:"omitempty,min=0,max=24"`
	SlotsAfterBreak      *int   `json:"slots_after_break"      binding:"omitempty,min=0,max=24"`
}

// SetupDefaultsResponse 生成表单的预填值
type SetupDefaultsResponse struct {
	StartTime            string `json:"start_time"`
	SlotDurationMinutes  int    `json:"slot_duration_minutes"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
	SlotsBeforeBreak     int    `json:"slots_before_break"`
	SlotsAfterBreak      int    `json:"slots_after_break"`
}

// TimetableResponse 课表版本信息响应
type TimetableResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	IsActive  bool               `json:"is_active"`
	CreatedAt string             `json:"created_at"`
	Divisions []DivisionResponse `json:"divisions,omitempty"`
	TimeSlots []TimeSlotResponse `json:"time_slots,omitempty"`
}

// DivisionResponse 班级信息
type DivisionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// TimeSlotResponse 节次信息
type TimeSlotResponse struct {
	ID             string `json:"id"`
	SequenceNumber int    `json:"sequence_number"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsBreak        bool   `json:"is_break"`
}

// HistoryRequest 版本历史分页参数（缺省第 1 页，每页 20 条）
type HistoryRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

const defaultHistoryPageSize = 20

// Normalize 填充缺省值并返回 (page, pageSize)
func (r *HistoryRequest) Normalize() (int, int) {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = defaultHistoryPageSize
	}
	return r.Page, r.PageSize
}

// Window 换算为仓储层的 offset/limit
func (r *HistoryRequest) Window() (offset, limit int) {
	page, size := r.Normalize()
	return (page - 1) * size, size
}
