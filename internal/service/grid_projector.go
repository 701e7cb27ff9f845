package service

import (
	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
)

// ── 网格投影 ────────────────────────────────────────────────
//
// 将稀疏的排课记录投影为 天 × 节次 × 班级 的稠密网格：
//   1. 课间节次：所有班级单元格均为 break，不做查找
//   2. 无排课：empty
//   3. 有排课：entry，文本为 科目代码 / 教师缩写 / 教室编号
//
// 查找基于每次投影构建一次的内存索引，不逐格查询存储。
// ─────────────────────────────────────────────────────────────

// EntryLookup 按 (星期, 节次, 班级) 查找排课
type EntryLookup func(day model.Weekday, timeSlotID, divisionID string) (*model.TimetableEntry, bool)

type cellKey struct {
	day        model.Weekday
	timeSlotID string
	divisionID string
}

// NewEntryIndex 构建排课索引；同一单元格出现多条记录时保留第一条
func NewEntryIndex(entries []model.TimetableEntry) EntryLookup {
	lookup, _ := indexEntries(entries)
	return lookup
}

// indexEntries 同 NewEntryIndex，另返回被忽略的重复记录。
// 库表有 uq_timetable_entries_cell 唯一约束，dropped 非空说明数据绕过了约束
func indexEntries(entries []model.TimetableEntry) (lookup EntryLookup, dropped []*model.TimetableEntry) {
	index := make(map[cellKey]*model.TimetableEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		k := cellKey{day: e.Day, timeSlotID: e.TimeSlotID, divisionID: e.DivisionID}
		if _, exists := index[k]; exists {
			dropped = append(dropped, e)
			continue
		}
		index[k] = e
	}
	lookup = func(day model.Weekday, timeSlotID, divisionID string) (*model.TimetableEntry, bool) {
		e, ok := index[cellKey{day: day, timeSlotID: timeSlotID, divisionID: divisionID}]
		return e, ok
	}
	return lookup, dropped
}

// ProjectGrid 投影课表网格（纯函数）
// slots 须已按 sequence_number 排序，divisions 须已按录入顺序排序
func ProjectGrid(tt *model.Timetable, days []model.Weekday, slots []model.TimeSlot, divisions []model.Division, lookup EntryLookup, breakLabel string) *dto.GridResponse {
	grid := &dto.GridResponse{
		TimetableID: tt.TimetableID,
		Name:        tt.Name,
		IsActive:    tt.IsActive,
		BreakLabel:  breakLabel,
		CreatedAt:   tt.CreatedAt,
		Divisions:   toDivisionResponses(divisions),
		Days:        make([]dto.GridDay, 0, len(days)),
	}

	for _, day := range days {
		gd := dto.GridDay{
			Day:     string(day),
			DayName: day.Name(),
			Slots:   make([]dto.GridSlotRow, 0, len(slots)),
		}
		for i := range slots {
			slot := &slots[i]
			row := dto.GridSlotRow{
				Slot:  toTimeSlotResponse(slot),
				Cells: make([]dto.GridCell, 0, len(divisions)),
			}
			for _, div := range divisions {
				row.Cells = append(row.Cells, resolveCell(day, slot, div.DivisionID, lookup))
			}
			gd.Slots = append(gd.Slots, row)
		}
		grid.Days = append(grid.Days, gd)
	}

	return grid
}

func resolveCell(day model.Weekday, slot *model.TimeSlot, divisionID string, lookup EntryLookup) dto.GridCell {
	if slot.IsBreak {
		return dto.GridCell{DivisionID: divisionID, Kind: dto.CellBreak}
	}
	entry, ok := lookup(day, slot.TimeSlotID, divisionID)
	if !ok {
		return dto.GridCell{DivisionID: divisionID, Kind: dto.CellEmpty}
	}
	return dto.GridCell{
		DivisionID:      divisionID,
		Kind:            dto.CellEntry,
		EntryID:         entry.EntryID,
		SubjectCode:     entry.SubjectCode(),
		FacultyInitials: entry.FacultyInitials(),
		RoomNumber:      entry.RoomNumber(),
	}
}

func toDivisionResponses(divisions []model.Division) []dto.DivisionResponse {
	result := make([]dto.DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		result = append(result, dto.DivisionResponse{ID: d.DivisionID, Name: d.Name, Position: d.Position})
	}
	return result
}

func toTimeSlotResponse(slot *model.TimeSlot) dto.TimeSlotResponse {
	return dto.TimeSlotResponse{
		ID:             slot.TimeSlotID,
		SequenceNumber: slot.SequenceNumber,
		StartTime:      slot.StartTime.String(),
		EndTime:        slot.EndTime.String(),
		IsBreak:        slot.IsBreak,
	}
}
