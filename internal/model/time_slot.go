package model

// TimeSlot 节次，对应 time_slots
// 同一版本内 SequenceNumber 从 1 起连续；上一节的结束时间即下一节的开始时间
type TimeSlot struct {
	TimeSlotID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	TimetableID    string `gorm:"type:uuid;not null;index"                       json:"timetable_id"`
	SequenceNumber int    `gorm:"not null"                                       json:"sequence_number"`
	StartTime      Clock  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime        Clock  `gorm:"type:time;not null"                             json:"end_time"`
	IsBreak        bool   `gorm:"not null;default:false"                         json:"is_break"`
	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// Label 时间段标签，如 "08:45-09:45"
func (s *TimeSlot) Label() string {
	return s.StartTime.String() + "-" + s.EndTime.String()
}
