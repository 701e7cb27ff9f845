package dto

// ── 排课模块 DTO ──

// CreateEntryRequest 新增排课请求
// TimetableID 为空时写入当前活动版本
type CreateEntryRequest struct {
	TimetableID string  `json:"timetable_id" binding:"omitempty,uuid"`
	Day         string  `json:"day"          binding:"required,oneof=MON TUE WED THU FRI SAT"`
	TimeSlotID  string  `json:"time_slot_id" binding:"required,uuid"`
	DivisionID  string  `json:"division_id"  binding:"required,uuid"`
	SubjectID   *string `json:"subject_id"   binding:"omitempty,uuid"`
	FacultyID   *string `json:"faculty_id"   binding:"omitempty,uuid"`
	RoomID      *string `json:"room_id"      binding:"omitempty,uuid"`
}

// UpdateEntryRequest 更新排课请求（单元格键不可变，仅替换科目/教师/教室）
type UpdateEntryRequest struct {
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
	RoomID    *string `json:"room_id"    binding:"omitempty,uuid"`
}

// EntryResponse 排课信息响应
type EntryResponse struct {
	ID          string  `json:"id"`
	TimetableID string  `json:"timetable_id"`
	Day         string  `json:"day"`
	TimeSlotID  string  `json:"time_slot_id"`
	DivisionID  string  `json:"division_id"`
	SubjectID   *string `json:"subject_id,omitempty"`
	FacultyID   *string `json:"faculty_id,omitempty"`
	RoomID      *string `json:"room_id,omitempty"`
	SubjectCode string  `json:"subject_code"`
	Faculty     string  `json:"faculty_initials"`
	RoomNumber  string  `json:"room_number"`
}
