package model

// TimetableEntry 排课记录，对应 timetable_entries
// (TimetableID, Day, TimeSlotID, DivisionID) 在版本内唯一；科目/教师/教室均可为空
type TimetableEntry struct {
	EntryID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	TimetableID string  `gorm:"type:uuid;not null;index"                       json:"timetable_id"`
	Day         Weekday `gorm:"type:varchar(3);not null"                       json:"day"`
	TimeSlotID  string  `gorm:"type:uuid;not null"                             json:"time_slot_id"`
	DivisionID  string  `gorm:"type:uuid;not null"                             json:"division_id"`
	SubjectID   *string `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	FacultyID   *string `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	RoomID      *string `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	BaseModel

	// 关联
	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID;references:TimeSlotID" json:"time_slot,omitempty"`
	Division *Division `gorm:"foreignKey:DivisionID;references:DivisionID" json:"division,omitempty"`
	Subject  *Subject  `gorm:"foreignKey:SubjectID;references:SubjectID"   json:"subject,omitempty"`
	Faculty  *Faculty  `gorm:"foreignKey:FacultyID;references:FacultyID"   json:"faculty,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID;references:RoomID"         json:"room,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

// SubjectCode 科目代码；未设置时为空串
func (e *TimetableEntry) SubjectCode() string {
	if e.Subject == nil {
		return ""
	}
	return e.Subject.Code
}

// FacultyInitials 教师缩写；未设置时为空串
func (e *TimetableEntry) FacultyInitials() string {
	if e.Faculty == nil {
		return ""
	}
	return e.Faculty.Initials
}

// RoomNumber 教室编号；未设置时为空串
func (e *TimetableEntry) RoomNumber() string {
	if e.Room == nil {
		return ""
	}
	return e.Room.Number
}
