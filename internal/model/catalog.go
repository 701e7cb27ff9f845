package model

// ── 共享参考数据（不随课表版本变化） ──

// Subject 科目，对应 subjects
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code      string `gorm:"type:varchar(20);not null"                      json:"code"` // e.g. FSD-1
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// Faculty 教师，对应 faculties
type Faculty struct {
	FacultyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"faculty_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Initials  string `gorm:"type:varchar(10);not null"                      json:"initials"` // e.g. PKP
	BaseModel
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculties" }

// Room 教室，对应 rooms
type Room struct {
	RoomID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Number string `gorm:"type:varchar(20);not null"                      json:"number"` // e.g. 410-C
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
