package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
)

// ── 演示数据 ──

var demoFaculties = []dto.FacultyRequest{
	{Name: "Prof. Prashant Sachaniya", Initials: "SDP"},
	{Name: "Prof. Mehul Kodiya", Initials: "MVK"},
	{Name: "Prof. Swati Patel", Initials: "SHP"},
	{Name: "Prof. Zalak Bhatt", Initials: "ZPB"},
	{Name: "Prof. Khushbu Patel", Initials: "PKP"},
	{Name: "Prof. Priyanka Sinha", Initials: "PCS"},
	{Name: "Prof. Zarana Barot", Initials: "ZVB"},
	{Name: "Prof. Darshan Bhatt", Initials: "DVB"},
	{Name: "Prof. Zalak Patel", Initials: "ZNP"},
}

var demoSubjects = []dto.SubjectRequest{
	{Name: "Digital Electronics", Code: "DE"},
	{Name: "Fundamentals of CS using Python", Code: "FCSP-1"},
	{Name: "Full Stack Dev", Code: "FSD-1"},
	{Name: "Probability", Code: "PS"},
}

var demoRooms = []string{"208", "410-C", "306-5", "306-4", "306-6", "203", "309-B", "204", "205"}

// demoEntry 演示排课；slot 为非课间节次的序号（从 0 开始），division 为班级下标
type demoEntry struct {
	day      string
	slot     int
	division int
	subject  string
	faculty  string
	room     string
}

var demoEntries = []demoEntry{
	{"MON", 0, 0, "DE", "SDP", "208"},
	{"MON", 0, 1, "FCSP-1", "MVK", "410-C"},
	{"MON", 0, 2, "FCSP-1", "SHP", "306-5"},
	{"MON", 1, 0, "DE", "SDP", "208"},
}

func demoSetupRequest() *dto.SetupTimetableRequest {
	before, after := 2, 2
	return &dto.SetupTimetableRequest{
		Name:                 "Demo Timetable",
		Divisions:            "D1, D2, D3, D4, D5, D6, D7, D8, D9",
		StartTime:            "08:45",
		SlotDurationMinutes:  60,
		BreakDurationMinutes: 45,
		SlotsBeforeBreak:     &before,
		SlotsAfterBreak:      &after,
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入演示用的科目、教师、教室与一个活动课表",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			tt, err := seedDemo(cmd.Context(), a.svc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成课表 %s（%s），共 %d 个班级、%d 个节次\n",
				tt.Name, tt.ID, len(tt.Divisions), len(tt.TimeSlots))
			return nil
		},
	}
}

// seedDemo 写入演示数据并返回新的活动版本
// 已存在的科目 / 教师 / 教室按代码、缩写、编号复用，重复执行不会产生重复的参考数据
func seedDemo(ctx context.Context, svc *service.Service) (*dto.TimetableResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	subjects, err := seedSubjects(ctx, svc.Catalog)
	if err != nil {
		return nil, err
	}
	faculties, err := seedFaculties(ctx, svc.Catalog)
	if err != nil {
		return nil, err
	}
	rooms, err := seedRooms(ctx, svc.Catalog)
	if err != nil {
		return nil, err
	}

	tt, err := svc.Timetable.Setup(ctx, demoSetupRequest())
	if err != nil {
		return nil, fmt.Errorf("生成课表结构失败: %w", err)
	}

	lectures := make([]dto.TimeSlotResponse, 0, len(tt.TimeSlots))
	for _, slot := range tt.TimeSlots {
		if !slot.IsBreak {
			lectures = append(lectures, slot)
		}
	}

	for _, e := range demoEntries {
		if e.slot >= len(lectures) || e.division >= len(tt.Divisions) {
			return nil, fmt.Errorf("演示排课超出课表范围: %s 第 %d 节 班级 %d", e.day, e.slot+1, e.division+1)
		}
		subjectID, facultyID, roomID := subjects[e.subject], faculties[e.faculty], rooms[e.room]
		_, err := svc.Entry.Create(ctx, &dto.CreateEntryRequest{
			TimetableID: tt.ID,
			Day:         e.day,
			TimeSlotID:  lectures[e.slot].ID,
			DivisionID:  tt.Divisions[e.division].ID,
			SubjectID:   &subjectID,
			FacultyID:   &facultyID,
			RoomID:      &roomID,
		})
		if err != nil {
			return nil, fmt.Errorf("写入演示排课失败: %w", err)
		}
	}

	return tt, nil
}

func seedSubjects(ctx context.Context, catalog service.CatalogService) (map[string]string, error) {
	existing, err := catalog.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询科目失败: %w", err)
	}
	ids := make(map[string]string, len(demoSubjects))
	for _, s := range existing {
		ids[s.Code] = s.ID
	}
	for i := range demoSubjects {
		if _, ok := ids[demoSubjects[i].Code]; ok {
			continue
		}
		created, err := catalog.CreateSubject(ctx, &demoSubjects[i])
		if err != nil {
			return nil, fmt.Errorf("创建科目 %s 失败: %w", demoSubjects[i].Code, err)
		}
		ids[created.Code] = created.ID
	}
	return ids, nil
}

func seedFaculties(ctx context.Context, catalog service.CatalogService) (map[string]string, error) {
	existing, err := catalog.ListFaculties(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询教师失败: %w", err)
	}
	ids := make(map[string]string, len(demoFaculties))
	for _, f := range existing {
		ids[f.Initials] = f.ID
	}
	for i := range demoFaculties {
		if _, ok := ids[demoFaculties[i].Initials]; ok {
			continue
		}
		created, err := catalog.CreateFaculty(ctx, &demoFaculties[i])
		if err != nil {
			return nil, fmt.Errorf("创建教师 %s 失败: %w", demoFaculties[i].Initials, err)
		}
		ids[created.Initials] = created.ID
	}
	return ids, nil
}

func seedRooms(ctx context.Context, catalog service.CatalogService) (map[string]string, error) {
	existing, err := catalog.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询教室失败: %w", err)
	}
	ids := make(map[string]string, len(demoRooms))
	for _, r := range existing {
		ids[r.Number] = r.ID
	}
	for _, number := range demoRooms {
		if _, ok := ids[number]; ok {
			continue
		}
		created, err := catalog.CreateRoom(ctx, &dto.RoomRequest{Number: number})
		if err != nil {
			return nil, fmt.Errorf("创建教室 %s 失败: %w", number, err)
		}
		ids[created.Number] = created.ID
	}
	return ids, nil
}
