package model

// Timetable 课表版本，对应 timetables
// 同一时刻至多一个版本 is_active=true（数据库部分唯一索引兜底）
type Timetable struct {
	TimetableID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive    bool   `gorm:"not null;default:false"                         json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Timetable) TableName() string { return "timetables" }

// Division 班级分组，对应 divisions
// Position 决定课表网格的列顺序（按录入顺序递增）
type Division struct {
	DivisionID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"division_id"`
	TimetableID string `gorm:"type:uuid;not null;index"                       json:"timetable_id"`
	Name        string `gorm:"type:varchar(10);not null"                      json:"name"`
	Position    int    `gorm:"not null;default:0"                             json:"position"`
	BaseModel
}

// TableName 指定表名
func (Division) TableName() string { return "divisions" }
