package service

import (
	"reflect"
	"testing"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
)

// ── 测试数据 ──
//
// 班级 [D1, D2]，节次 [S1(08:45-09:45), S2(课间)]，
// 一条排课 (MON, S1, D1) = DE / SDP / 208

func strPtr(s string) *string { return &s }

func sampleGridInput() (*model.Timetable, []model.TimeSlot, []model.Division, []model.TimetableEntry) {
	tt := &model.Timetable{TimetableID: "tt-1", Name: "Timetable 2026-03-04 09:00", IsActive: true}
	slots := []model.TimeSlot{
		{TimeSlotID: "s1", TimetableID: "tt-1", SequenceNumber: 1, StartTime: model.NewClock(8, 45), EndTime: model.NewClock(9, 45)},
		{TimeSlotID: "s2", TimetableID: "tt-1", SequenceNumber: 2, StartTime: model.NewClock(9, 45), EndTime: model.NewClock(10, 30), IsBreak: true},
	}
	divisions := []model.Division{
		{DivisionID: "d1", TimetableID: "tt-1", Name: "D1", Position: 1},
		{DivisionID: "d2", TimetableID: "tt-1", Name: "D2", Position: 2},
	}
	entries := []model.TimetableEntry{
		{
			EntryID: "e1", TimetableID: "tt-1", Day: model.Monday, TimeSlotID: "s1", DivisionID: "d1",
			SubjectID: strPtr("sub-de"), FacultyID: strPtr("fac-sdp"), RoomID: strPtr("room-208"),
			Subject: &model.Subject{SubjectID: "sub-de", Name: "Digital Electronics", Code: "DE"},
			Faculty: &model.Faculty{FacultyID: "fac-sdp", Initials: "SDP"},
			Room:    &model.Room{RoomID: "room-208", Number: "208"},
		},
	}
	return tt, slots, divisions, entries
}

func TestProjectGrid_Scenario(t *testing.T) {
	tt, slots, divisions, entries := sampleGridInput()

	grid := ProjectGrid(tt, model.Weekdays, slots, divisions, NewEntryIndex(entries), "BREAK")

	if len(grid.Days) != 6 {
		t.Fatalf("期望 6 天，实际 %d", len(grid.Days))
	}
	mon := grid.Days[0]
	if mon.Day != "MON" || mon.DayName != "Monday" {
		t.Errorf("第一天应为 MON/Monday，实际 %s/%s", mon.Day, mon.DayName)
	}

	s1 := mon.Slots[0]
	if got := s1.Cells[0].Text("", "BREAK"); got != "DE\nSDP\n208" {
		t.Errorf("MON/S1/D1 期望 DE\\nSDP\\n208，实际 %q", got)
	}
	if s1.Cells[1].Kind != dto.CellEmpty {
		t.Errorf("MON/S1/D2 应为 empty，实际 %s", s1.Cells[1].Kind)
	}

	s2 := mon.Slots[1]
	for i, c := range s2.Cells {
		if c.Kind != dto.CellBreak {
			t.Errorf("MON/S2 第 %d 列应为 break，实际 %s", i, c.Kind)
		}
	}

	// 其他天全部为空（课间行除外）
	for _, day := range grid.Days[1:] {
		for _, c := range day.Slots[0].Cells {
			if c.Kind != dto.CellEmpty {
				t.Errorf("%s/S1 应为 empty，实际 %s", day.Day, c.Kind)
			}
		}
	}
}

func TestProjectGrid_Shape(t *testing.T) {
	tt, slots, divisions, entries := sampleGridInput()

	grid := ProjectGrid(tt, model.Weekdays, slots, divisions, NewEntryIndex(entries), "BREAK")

	for i, day := range grid.Days {
		if day.Day != string(model.Weekdays[i]) {
			t.Errorf("第 %d 天顺序错误: %s", i, day.Day)
		}
		if len(day.Slots) != len(slots) {
			t.Fatalf("%s 节次行数 %d，期望 %d", day.Day, len(day.Slots), len(slots))
		}
		for j, row := range day.Slots {
			if row.Slot.SequenceNumber != j+1 {
				t.Errorf("%s 第 %d 行 sequence=%d", day.Day, j, row.Slot.SequenceNumber)
			}
			if len(row.Cells) != len(divisions) {
				t.Fatalf("%s 第 %d 行单元格数 %d", day.Day, j, len(row.Cells))
			}
			for k, c := range row.Cells {
				if c.DivisionID != divisions[k].DivisionID {
					t.Errorf("列顺序错误: %s vs %s", c.DivisionID, divisions[k].DivisionID)
				}
			}
		}
	}
}

func TestProjectGrid_BreakIgnoresEntries(t *testing.T) {
	tt, slots, divisions, entries := sampleGridInput()
	// 课间节次上存在排课记录
	entries = append(entries, model.TimetableEntry{
		EntryID: "e2", TimetableID: "tt-1", Day: model.Monday, TimeSlotID: "s2", DivisionID: "d2",
		Subject: &model.Subject{Code: "PS"},
	})

	lookups := 0
	index := NewEntryIndex(entries)
	counting := func(day model.Weekday, slotID, divID string) (*model.TimetableEntry, bool) {
		lookups++
		if slotID == "s2" {
			t.Errorf("课间节次不应查找排课")
		}
		return index(day, slotID, divID)
	}

	grid := ProjectGrid(tt, model.Weekdays, slots, divisions, counting, "BREAK")

	if c := grid.Days[0].Slots[1].Cells[1]; c.Kind != dto.CellBreak || c.SubjectCode != "" {
		t.Errorf("课间单元格应忽略排课，实际 %+v", c)
	}
	// 6 天 × 1 个非课间节次 × 2 个班级
	if lookups != 12 {
		t.Errorf("期望 12 次查找，实际 %d", lookups)
	}
}

func TestProjectGrid_PartialAssignment(t *testing.T) {
	tt, slots, divisions, _ := sampleGridInput()
	entries := []model.TimetableEntry{
		{EntryID: "e1", Day: model.Tuesday, TimeSlotID: "s1", DivisionID: "d2", Faculty: &model.Faculty{Initials: "MVK"}},
	}

	grid := ProjectGrid(tt, model.Weekdays, slots, divisions, NewEntryIndex(entries), "BREAK")

	c := grid.Days[1].Slots[0].Cells[1]
	if c.Kind != dto.CellEntry {
		t.Fatalf("应为 entry，实际 %s", c.Kind)
	}
	if got := c.Text("-", "BREAK"); got != "\nMVK\n" {
		t.Errorf("未设置的引用应保留空行，实际 %q", got)
	}
}

func TestProjectGrid_Idempotent(t *testing.T) {
	tt, slots, divisions, entries := sampleGridInput()
	lookup := NewEntryIndex(entries)

	a := ProjectGrid(tt, model.Weekdays, slots, divisions, lookup, "BREAK")
	b := ProjectGrid(tt, model.Weekdays, slots, divisions, lookup, "BREAK")

	if !reflect.DeepEqual(a, b) {
		t.Error("相同输入的两次投影结果应一致")
	}
}

func TestProjectGrid_Empty(t *testing.T) {
	tt := &model.Timetable{TimetableID: "tt-empty"}

	grid := ProjectGrid(tt, model.Weekdays, nil, nil, NewEntryIndex(nil), "BREAK")

	if len(grid.Days) != 6 {
		t.Fatalf("期望 6 天，实际 %d", len(grid.Days))
	}
	for _, d := range grid.Days {
		if len(d.Slots) != 0 {
			t.Errorf("%s 不应有节次行", d.Day)
		}
	}
}

func TestNewEntryIndex_KeepsFirst(t *testing.T) {
	entries := []model.TimetableEntry{
		{EntryID: "first", Day: model.Friday, TimeSlotID: "s1", DivisionID: "d1"},
		{EntryID: "second", Day: model.Friday, TimeSlotID: "s1", DivisionID: "d1"},
	}
	lookup := NewEntryIndex(entries)

	e, ok := lookup(model.Friday, "s1", "d1")
	if !ok || e.EntryID != "first" {
		t.Errorf("应返回第一条记录，实际 %+v", e)
	}
	if _, ok := lookup(model.Saturday, "s1", "d1"); ok {
		t.Error("不存在的单元格不应命中")
	}
}

func TestIndexEntries_ReportsDuplicates(t *testing.T) {
	entries := []model.TimetableEntry{
		{EntryID: "first", Day: model.Monday, TimeSlotID: "s1", DivisionID: "d1"},
		{EntryID: "other", Day: model.Monday, TimeSlotID: "s1", DivisionID: "d2"},
		{EntryID: "second", Day: model.Monday, TimeSlotID: "s1", DivisionID: "d1"},
	}

	lookup, dropped := indexEntries(entries)
	if len(dropped) != 1 || dropped[0].EntryID != "second" {
		t.Fatalf("应报告一条重复记录 second，实际 %v", dropped)
	}
	if e, ok := lookup(model.Monday, "s1", "d1"); !ok || e.EntryID != "first" {
		t.Errorf("重复单元格应保留第一条，实际 %+v", e)
	}

	if _, dropped := indexEntries(entries[:2]); len(dropped) != 0 {
		t.Errorf("无重复时不应报告，实际 %v", dropped)
	}
}
