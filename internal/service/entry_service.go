package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
	"github.com/krishpatel1827/EduSync/internal/repository"
)

// ── 排课模块业务错误 ──

var (
	ErrEntryNotFound         = errors.New("排课记录不存在")
	ErrEntryDuplicate        = errors.New("该单元格（星期/节次/班级）已有排课")
	ErrEntryDayInvalid       = errors.New("星期必须为 MON~SAT")
	ErrEntrySlotMismatch     = errors.New("节次不属于该课表版本")
	ErrEntryDivisionMismatch = errors.New("班级不属于该课表版本")
	ErrSubjectNotFound       = errors.New("科目不存在")
	ErrFacultyNotFound       = errors.New("教师不存在")
	ErrRoomNotFound          = errors.New("教室不存在")
)

// EntryService 排课业务接口
//
// 单元格 (版本, 星期, 节次, 班级) 唯一：重复提交一律拒绝，不覆盖已有记录。
type EntryService interface {
	Create(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, timetableID string) ([]dto.EntryResponse, error)
}

type entryService struct {
	repo   *repository.Repository
	cache  *gridCacheGuard
	logger *zap.Logger
}

// NewEntryService 创建 EntryService 实例
func NewEntryService(repo *repository.Repository, cache *gridCacheGuard, logger *zap.Logger) EntryService {
	return &entryService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *entryService) Create(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	day, ok := model.ParseWeekday(req.Day)
	if !ok {
		return nil, ErrEntryDayInvalid
	}

	// 1. 确定版本：未指定时写入活动版本
	timetableID := req.TimetableID
	if timetableID == "" {
		tt, err := s.repo.Timetable.GetActive(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoActiveTimetable
			}
			s.logger.Error("查询活动课表失败", zap.Error(err))
			return nil, err
		}
		timetableID = tt.TimetableID
	} else if _, err := s.repo.Timetable.GetByID(ctx, timetableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表版本失败", zap.String("id", timetableID), zap.Error(err))
		return nil, err
	}

	// 2. 节次与班级必须属于同一版本
	slot, err := s.repo.TimeSlot.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntrySlotMismatch
		}
		return nil, err
	}
	if slot.TimetableID != timetableID {
		return nil, ErrEntrySlotMismatch
	}
	division, err := s.repo.Division.GetByID(ctx, req.DivisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryDivisionMismatch
		}
		return nil, err
	}
	if division.TimetableID != timetableID {
		return nil, ErrEntryDivisionMismatch
	}

	// 3. 可选引用必须存在
	if err := s.checkReferences(ctx, req.SubjectID, req.FacultyID, req.RoomID); err != nil {
		return nil, err
	}

	// 4. 唯一性：先查后写，数据库唯一索引兜底并发
	if _, err := s.repo.Entry.FindByCell(ctx, timetableID, day, slot.TimeSlotID, division.DivisionID); err == nil {
		return nil, ErrEntryDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询单元格排课失败", zap.Error(err))
		return nil, err
	}

	entry := &model.TimetableEntry{
		TimetableID: timetableID,
		Day:         day,
		TimeSlotID:  slot.TimeSlotID,
		DivisionID:  division.DivisionID,
		SubjectID:   emptyToNil(req.SubjectID),
		FacultyID:   emptyToNil(req.FacultyID),
		RoomID:      emptyToNil(req.RoomID),
	}
	if err := s.repo.Entry.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEntryDuplicate
		}
		s.logger.Error("创建排课失败", zap.Error(err))
		return nil, err
	}

	s.cache.invalidate(ctx, timetableID)
	return s.reload(ctx, entry.EntryID)
}

// ────────────────────── Update ──────────────────────

func (s *entryService) Update(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.checkReferences(ctx, req.SubjectID, req.FacultyID, req.RoomID); err != nil {
		return nil, err
	}

	entry.SubjectID = emptyToNil(req.SubjectID)
	entry.FacultyID = emptyToNil(req.FacultyID)
	entry.RoomID = emptyToNil(req.RoomID)

	if err := s.repo.Entry.Update(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("更新排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.invalidate(ctx, entry.TimetableID)
	return s.reload(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *entryService) Delete(ctx context.Context, id string) error {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Entry.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("删除排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.invalidate(ctx, entry.TimetableID)
	return nil
}

// ────────────────────── List ──────────────────────

func (s *entryService) List(ctx context.Context, timetableID string) ([]dto.EntryResponse, error) {
	if _, err := s.repo.Timetable.GetByID(ctx, timetableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表版本失败", zap.String("id", timetableID), zap.Error(err))
		return nil, err
	}

	entries, err := s.repo.Entry.ListByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("列出排课失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toEntryResponse(&entries[i]))
	}
	return result, nil
}

// ── 内部方法 ──

func (s *entryService) checkReferences(ctx context.Context, subjectID, facultyID, roomID *string) error {
	if id := emptyToNil(subjectID); id != nil {
		if _, err := s.repo.Subject.GetByID(ctx, *id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}
	}
	if id := emptyToNil(facultyID); id != nil {
		if _, err := s.repo.Faculty.GetByID(ctx, *id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFacultyNotFound
			}
			return err
		}
	}
	if id := emptyToNil(roomID); id != nil {
		if _, err := s.repo.Room.GetByID(ctx, *id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
	}
	return nil
}

// reload 重新读取（带预加载引用）以返回完整的单元格文本
func (s *entryService) reload(ctx context.Context, id string) (*dto.EntryResponse, error) {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return toEntryResponse(entry), nil
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func toEntryResponse(e *model.TimetableEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:          e.EntryID,
		TimetableID: e.TimetableID,
		Day:         string(e.Day),
		TimeSlotID:  e.TimeSlotID,
		DivisionID:  e.DivisionID,
		SubjectID:   e.SubjectID,
		FacultyID:   e.FacultyID,
		RoomID:      e.RoomID,
		SubjectCode: e.SubjectCode(),
		Faculty:     e.FacultyInitials(),
		RoomNumber:  e.RoomNumber(),
	}
}
