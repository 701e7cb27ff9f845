package dto

import (
	"strings"
	"time"
)

// ── 课表网格 ──
//
// 结构：天（MON..SAT）→ 节次（sequence_number 升序）→ 班级（录入顺序）
// 单元格三种形态：entry（有排课）/ empty（无排课）/ break（课间）

// CellKind 单元格类型
type CellKind string

const (
	CellEntry CellKind = "entry"
	CellEmpty CellKind = "empty"
	CellBreak CellKind = "break"
)

// GridResponse 课表网格
type GridResponse struct {
	TimetableID string             `json:"timetable_id"`
	Name        string             `json:"name"`
	IsActive    bool               `json:"is_active"`
	BreakLabel  string             `json:"break_label"`
	CreatedAt   time.Time          `json:"created_at"`
	Divisions   []DivisionResponse `json:"divisions"`
	Days        []GridDay          `json:"days"`
}

// GridDay 一天的所有节次行
type GridDay struct {
	Day     string        `json:"day"`      // MON
	DayName string        `json:"day_name"` // Monday
	Slots   []GridSlotRow `json:"slots"`
}

// GridSlotRow 一个节次行；Cells 与 GridResponse.Divisions 一一对应
type GridSlotRow struct {
	Slot  TimeSlotResponse `json:"slot"`
	Cells []GridCell       `json:"cells"`
}

// GridCell 网格单元格
type GridCell struct {
	DivisionID      string   `json:"division_id"`
	Kind            CellKind `json:"kind"`
	EntryID         string   `json:"entry_id,omitempty"`
	SubjectCode     string   `json:"subject_code,omitempty"`
	FacultyInitials string   `json:"faculty_initials,omitempty"`
	RoomNumber      string   `json:"room_number,omitempty"`
}

// Lines 单元格文本行：科目代码 / 教师缩写 / 教室编号，未设置的引用保留为空行
func (c GridCell) Lines() []string {
	return []string{c.SubjectCode, c.FacultyInitials, c.RoomNumber}
}

// Text 单元格文本：entry 为三行拼接；break 为 breakLabel；empty 为 emptyText
func (c GridCell) Text(emptyText, breakLabel string) string {
	switch c.Kind {
	case CellBreak:
		return breakLabel
	case CellEntry:
		return strings.Join(c.Lines(), "\n")
	default:
		return emptyText
	}
}
