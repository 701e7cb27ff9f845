package dto

// ── 参考数据（科目 / 教师 / 教室） DTO ──

// SubjectRequest 创建/更新科目
type SubjectRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=20"`
}

// FacultyRequest 创建/更新教师
type FacultyRequest struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Initials string `json:"initials" binding:"required,max=10"`
}

// RoomRequest 创建/更新教室
type RoomRequest struct {
	Number string `json:"number" binding:"required,max=20"`
}

// SubjectResponse 科目
type SubjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// FacultyResponse 教师
type FacultyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// RoomResponse 教室
type RoomResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}
