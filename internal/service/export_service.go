package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail   = errors.New("生成导出文件失败")
	ErrExportDivisionAbsent = errors.New("班级不属于该课表版本")
)

// ExportService 导出业务接口
//
// 三种导出共用同一网格（GetGrid，含缓存）：
//   - 电子表格（xlsx）：无排课为空串
//   - 分页文档（pdf）：无排课为 "-"
//   - 日历（ics）：每个非课间排课生成一条每周重复事件
//
// 返回 bytes.Buffer 与建议文件名，由 Handler 设置响应头后写出。
type ExportService interface {
	ExportSpreadsheet(ctx context.Context, timetableID string) (*bytes.Buffer, string, error)
	ExportPDF(ctx context.Context, timetableID string) (*bytes.Buffer, string, error)
	// ExportICS divisionID 为空时导出所有班级
	ExportICS(ctx context.Context, timetableID, divisionID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg       *config.TimetableConfig
	timetable TimetableService
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.TimetableConfig, timetable TimetableService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, timetable: timetable, logger: logger}
}

// ────────────────────── 电子表格 ──────────────────────

func (s *exportService) ExportSpreadsheet(ctx context.Context, timetableID string) (*bytes.Buffer, string, error) {
	grid, err := s.timetable.GetGrid(ctx, timetableID)
	if err != nil {
		return nil, "", err
	}

	buf, err := EncodeSpreadsheet(ToRows(grid, SpreadsheetEmptyText))
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("timetable_id", grid.TimetableID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, grid.Name + ".xlsx", nil
}

// ────────────────────── 分页文档 ──────────────────────

func (s *exportService) ExportPDF(ctx context.Context, timetableID string) (*bytes.Buffer, string, error) {
	grid, err := s.timetable.GetGrid(ctx, timetableID)
	if err != nil {
		return nil, "", err
	}

	buf, err := EncodeDocument(grid.Name, ToRows(grid, DocumentEmptyText), DocumentStyle{FontSize: s.cfg.ExportFontSize})
	if err != nil {
		s.logger.Error("生成 PDF 失败", zap.String("timetable_id", grid.TimetableID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, grid.Name + ".pdf", nil
}

// ════════════════════════════════════════════════════════════
// ExportICS：导出为 iCalendar
// ════════════════════════════════════════════════════════════
//
// 锚定周：版本创建时间所在周的周一；每个排课生成一条 FREQ=WEEKLY 事件。
// 时间以浮动本地时间写出（不带时区），与节次的墙上时间一致。
// UID 由 排课ID 派生，同一版本多次导出结果稳定。

const icsLocalLayout = "20060102T150405"

func (s *exportService) ExportICS(ctx context.Context, timetableID, divisionID string) (*bytes.Buffer, string, error) {
	grid, err := s.timetable.GetGrid(ctx, timetableID)
	if err != nil {
		return nil, "", err
	}

	cal, err := BuildCalendar(grid, divisionID)
	if err != nil {
		return nil, "", err
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := grid.Name + ".ics"
	if divisionID != "" {
		filename = grid.Name + " " + divisionName(grid, divisionID) + ".ics"
	}
	return buf, filename, nil
}

// BuildCalendar 由网格构建日历；divisionID 非空时仅包含该班级
func BuildCalendar(grid *dto.GridResponse, divisionID string) (*ics.Calendar, error) {
	if divisionID != "" && divisionName(grid, divisionID) == "" {
		return nil, ErrExportDivisionAbsent
	}

	anchor := weekAnchor(grid.CreatedAt)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//EduSync//Timetable//EN")
	cal.SetXWRCalName(grid.Name)

	for _, day := range grid.Days {
		wd, ok := model.ParseWeekday(day.Day)
		if !ok {
			continue
		}
		date := anchor.AddDate(0, 0, wd.Offset())

		for _, row := range day.Slots {
			if row.Slot.IsBreak {
				continue
			}
			start, err := slotTime(date, row.Slot.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := slotTime(date, row.Slot.EndTime)
			if err != nil {
				return nil, err
			}
			if !end.After(start) {
				// 跨越午夜的节次
				end = end.AddDate(0, 0, 1)
			}

			for i, cell := range row.Cells {
				if cell.Kind != dto.CellEntry {
					continue
				}
				if divisionID != "" && cell.DivisionID != divisionID {
					continue
				}
				div := grid.Divisions[i].Name

				ev := cal.AddEvent(cell.EntryID + "@edusync")
				ev.SetDtStampTime(grid.CreatedAt.UTC())
				ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsLocalLayout))
				ev.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsLocalLayout))
				ev.AddRrule("FREQ=WEEKLY")
				ev.SetSummary(eventSummary(div, cell))
				ev.SetDescription(cell.Text("", ""))
				if cell.RoomNumber != "" {
					ev.SetLocation(cell.RoomNumber)
				}
			}
		}
	}
	return cal, nil
}

// weekAnchor 返回 t 所在周的周一 00:00（按 t 自身时区的日期，结果为 UTC 浮动时间）
func weekAnchor(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC) // 周一
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func slotTime(date time.Time, hhmm string) (time.Time, error) {
	c, err := model.ParseClock(hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("节次时间无效 %q: %w", hhmm, err)
	}
	return date.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), nil
}

func eventSummary(division string, cell dto.GridCell) string {
	parts := []string{division}
	if cell.SubjectCode != "" {
		parts = append(parts, cell.SubjectCode)
	}
	if cell.FacultyInitials != "" {
		parts = append(parts, "("+cell.FacultyInitials+")")
	}
	return strings.Join(parts, " ")
}

func divisionName(grid *dto.GridResponse, divisionID string) string {
	for _, d := range grid.Divisions {
		if d.ID == divisionID {
			return d.Name
		}
	}
	return ""
}
