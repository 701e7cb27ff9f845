package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
	"github.com/krishpatel1827/EduSync/internal/repository"
)

// ── 课表版本模块业务错误 ──

var (
	ErrTimetableNotFound        = errors.New("课表版本不存在")
	ErrNoActiveTimetable        = errors.New("当前没有活动课表")
	ErrSetupDivisionsEmpty      = errors.New("班级列表不能为空")
	ErrSetupDivisionNameTooLong = errors.New("班级名称不能超过 10 个字符")
	ErrSetupStartTimeInvalid    = errors.New("开始时间格式无效，应为 HH:MM")
)

const (
	maxDivisionNameLen  = 10
	timetableNameLayout = "2006-01-02 15:04"
)

// TimetableService 课表版本业务接口
type TimetableService interface {
	// Setup 生成新版本（节次 + 班级）并设为唯一活动版本
	Setup(ctx context.Context, req *dto.SetupTimetableRequest) (*dto.TimetableResponse, error)
	// Defaults 省略字段时 Setup 使用的值
	Defaults() *dto.SetupDefaultsResponse
	List(ctx context.Context, page *dto.HistoryRequest) ([]dto.TimetableResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.TimetableResponse, error)
	GetActive(ctx context.Context) (*dto.TimetableResponse, error)
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// GetGrid 投影课表网格；id 为空时取活动版本
	GetGrid(ctx context.Context, id string) (*dto.GridResponse, error)
}

type timetableService struct {
	cfg    *config.TimetableConfig
	repo   *repository.Repository
	cache  *gridCacheGuard
	logger *zap.Logger
	now    func() time.Time
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cfg *config.TimetableConfig, repo *repository.Repository, cache *gridCacheGuard, logger *zap.Logger) TimetableService {
	return &timetableService{cfg: cfg, repo: repo, cache: cache, logger: logger, now: time.Now}
}

// ════════════════════════════════════════════════════════════
// Setup：生成课表结构
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 解析并校验输入（任一失败则不写库）
//   2. 生成节次序列
//   3. 单事务：清除活动标记 → 创建版本 → 批量写入节次与班级

func (s *timetableService) Setup(ctx context.Context, req *dto.SetupTimetableRequest) (*dto.TimetableResponse, error) {
	names, err := ParseDivisionNames(req.Divisions)
	if err != nil {
		return nil, err
	}

	params, err := s.slotParams(req)
	if err != nil {
		return nil, err
	}
	slots, err := GenerateSlots(params)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Timetable " + s.now().Format(timetableNameLayout)
	}

	tt := &model.Timetable{Name: name, IsActive: true}
	divisions := make([]model.Division, 0, len(names))

	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Timetable.ClearActive(ctx); err != nil {
			return err
		}
		if err := txRepo.Timetable.Create(ctx, tt); err != nil {
			return err
		}

		for i := range slots {
			slots[i].TimetableID = tt.TimetableID
		}
		if err := txRepo.TimeSlot.BatchCreate(ctx, slots); err != nil {
			return err
		}

		for i, n := range names {
			divisions = append(divisions, model.Division{
				TimetableID: tt.TimetableID,
				Name:        n,
				Position:    i + 1,
			})
		}
		return txRepo.Division.BatchCreate(ctx, divisions)
	})
	if err != nil {
		s.logger.Error("生成课表失败", zap.Error(err))
		return nil, err
	}

	// 旧版本的 is_active 已被清除，其缓存网格随之过期
	s.cache.invalidateAll(ctx)

	s.logger.Info("课表版本已生成",
		zap.String("timetable_id", tt.TimetableID),
		zap.String("name", tt.Name),
		zap.Int("slots", len(slots)),
		zap.Int("divisions", len(divisions)),
	)

	return toTimetableResponse(tt, slots, divisions), nil
}

// slotParams 合并请求与 timetable.default_* 配置；请求中省略的字段取配置值
func (s *timetableService) slotParams(req *dto.SetupTimetableRequest) (SlotParams, error) {
	d := s.Defaults()
	if req.StartTime != "" {
		d.StartTime = req.StartTime
	}
	if req.SlotDurationMinutes != 0 {
		d.SlotDurationMinutes = req.SlotDurationMinutes
	}
	if req.BreakDurationMinutes != 0 {
		d.BreakDurationMinutes = req.BreakDurationMinutes
	}
	if req.SlotsBeforeBreak != nil {
		d.SlotsBeforeBreak = *req.SlotsBeforeBreak
	}
	if req.SlotsAfterBreak != nil {
		d.SlotsAfterBreak = *req.SlotsAfterBreak
	}

	start, err := model.ParseClock(d.StartTime)
	if err != nil {
		return SlotParams{}, ErrSetupStartTimeInvalid
	}
	return SlotParams{
		StartTime:           start,
		LectureMinutes:      d.SlotDurationMinutes,
		BreakMinutes:        d.BreakDurationMinutes,
		LecturesBeforeBreak: d.SlotsBeforeBreak,
		LecturesAfterBreak:  d.SlotsAfterBreak,
	}, nil
}

// Defaults 生成表单的预填值
func (s *timetableService) Defaults() *dto.SetupDefaultsResponse {
	return &dto.SetupDefaultsResponse{
		StartTime:            s.cfg.DefaultStartTime,
		SlotDurationMinutes:  s.cfg.DefaultSlotDuration,
		BreakDurationMinutes: s.cfg.DefaultBreakDuration,
		SlotsBeforeBreak:     s.cfg.DefaultSlotsBefore,
		SlotsAfterBreak:      s.cfg.DefaultSlotsAfter,
	}
}

// ParseDivisionNames 解析逗号分隔的班级名称：去除首尾空白，丢弃空项，保持录入顺序
func ParseDivisionNames(raw string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		n := strings.TrimSpace(part)
		if n == "" {
			continue
		}
		if utf8.RuneCountInString(n) > maxDivisionNameLen {
			return nil, ErrSetupDivisionNameTooLong
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, ErrSetupDivisionsEmpty
	}
	return names, nil
}

// ────────────────────── List ──────────────────────

func (s *timetableService) List(ctx context.Context, page *dto.HistoryRequest) ([]dto.TimetableResponse, int64, error) {
	offset, limit := page.Window()
	list, total, err := s.repo.Timetable.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("列出课表版本失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TimetableResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTimetableResponse(&list[i], nil, nil))
	}
	return result, total, nil
}

// ────────────────────── GetByID / GetActive ──────────────────────

func (s *timetableService) GetByID(ctx context.Context, id string) (*dto.TimetableResponse, error) {
	tt, err := s.findTimetable(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withChildren(ctx, tt)
}

func (s *timetableService) GetActive(ctx context.Context) (*dto.TimetableResponse, error) {
	tt, err := s.findTimetable(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.withChildren(ctx, tt)
}

func (s *timetableService) withChildren(ctx context.Context, tt *model.Timetable) (*dto.TimetableResponse, error) {
	slots, err := s.repo.TimeSlot.ListByTimetable(ctx, tt.TimetableID)
	if err != nil {
		s.logger.Error("查询节次失败", zap.String("timetable_id", tt.TimetableID), zap.Error(err))
		return nil, err
	}
	divisions, err := s.repo.Division.ListByTimetable(ctx, tt.TimetableID)
	if err != nil {
		s.logger.Error("查询班级失败", zap.String("timetable_id", tt.TimetableID), zap.Error(err))
		return nil, err
	}
	return toTimetableResponse(tt, slots, divisions), nil
}

// findTimetable id 为空时查询活动版本
func (s *timetableService) findTimetable(ctx context.Context, id string) (*model.Timetable, error) {
	if id == "" {
		tt, err := s.repo.Timetable.GetActive(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoActiveTimetable
			}
			s.logger.Error("查询活动课表失败", zap.Error(err))
			return nil, err
		}
		return tt, nil
	}

	tt, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表版本失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return tt, nil
}

// ────────────────────── Activate ──────────────────────

// Activate 在单事务中完成 ClearActive + SetActive，读者不会观察到 0 个或 2 个活动版本
func (s *timetableService) Activate(ctx context.Context, id string) error {
	if _, err := s.findTimetable(ctx, id); err != nil {
		return err
	}

	err := s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Timetable.ClearActive(ctx); err != nil {
			return err
		}
		return txRepo.Timetable.SetActive(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		s.logger.Error("激活课表版本失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 网格中携带 is_active，所有版本的缓存均已过期
	s.cache.invalidateAll(ctx)
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		s.logger.Error("删除课表版本失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.cache.invalidate(ctx, id)
	return nil
}

// ════════════════════════════════════════════════════════════
// GetGrid：网格投影
// ════════════════════════════════════════════════════════════
//
// 节次、班级、排课各一次查询（排课预加载科目/教师/教室），
// 索引只构建一次；结果按版本缓存。

func (s *timetableService) GetGrid(ctx context.Context, id string) (*dto.GridResponse, error) {
	tt, err := s.findTimetable(ctx, id)
	if err != nil {
		return nil, err
	}

	if grid, ok := s.cache.get(ctx, tt.TimetableID); ok {
		return grid, nil
	}

	slots, err := s.repo.TimeSlot.ListByTimetable(ctx, tt.TimetableID)
	if err != nil {
		s.logger.Error("查询节次失败", zap.String("timetable_id", tt.TimetableID), zap.Error(err))
		return nil, err
	}
	divisions, err := s.repo.Division.ListByTimetable(ctx, tt.TimetableID)
	if err != nil {
		s.logger.Error("查询班级失败", zap.String("timetable_id", tt.TimetableID), zap.Error(err))
		return nil, err
	}
	entries, err := s.repo.Entry.ListByTimetable(ctx, tt.TimetableID)
	if err != nil {
		s.logger.Error("查询排课失败", zap.String("timetable_id", tt.TimetableID), zap.Error(err))
		return nil, err
	}

	lookup, dropped := indexEntries(entries)
	if len(dropped) > 0 {
		s.logger.Warn("同一单元格存在多条排课，仅显示第一条",
			zap.String("timetable_id", tt.TimetableID),
			zap.Int("duplicates", len(dropped)),
			zap.String("first_dropped", dropped[0].EntryID),
		)
	}
	grid := ProjectGrid(tt, model.Weekdays, slots, divisions, lookup, s.cfg.BreakLabel)
	s.cache.set(ctx, tt.TimetableID, grid)
	return grid, nil
}

// ── 转换 ──

func toTimetableResponse(tt *model.Timetable, slots []model.TimeSlot, divisions []model.Division) *dto.TimetableResponse {
	resp := &dto.TimetableResponse{
		ID:        tt.TimetableID,
		Name:      tt.Name,
		IsActive:  tt.IsActive,
		CreatedAt: formatTime(tt.CreatedAt),
	}
	if len(divisions) > 0 {
		resp.Divisions = toDivisionResponses(divisions)
	}
	if len(slots) > 0 {
		resp.TimeSlots = make([]dto.TimeSlotResponse, 0, len(slots))
		for i := range slots {
			resp.TimeSlots = append(resp.TimeSlots, toTimeSlotResponse(&slots[i]))
		}
	}
	return resp
}
