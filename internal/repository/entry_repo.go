package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/model"
)

// EntryRepository 排课数据访问接口
type EntryRepository interface {
	Create(ctx context.Context, entry *model.TimetableEntry) error
	GetByID(ctx context.Context, id string) (*model.TimetableEntry, error)
	FindByCell(ctx context.Context, timetableID string, day model.Weekday, timeSlotID, divisionID string) (*model.TimetableEntry, error)
	ListByTimetable(ctx context.Context, timetableID string) ([]model.TimetableEntry, error)
	Update(ctx context.Context, entry *model.TimetableEntry) error
	Delete(ctx context.Context, id string) error
	// ClearReference 将引用了某科目/教师/教室的排课字段置空
	ClearReference(ctx context.Context, column string, id string) error
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepo 创建 EntryRepository 实例
func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

// 允许被 ClearReference 置空的列
var clearableColumns = map[string]bool{
	"subject_id": true,
	"faculty_id": true,
	"room_id":    true,
}

func (r *entryRepo) Create(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Omit("TimeSlot", "Division", "Subject", "Faculty", "Room").Create(entry).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.preloadRefs(r.db.WithContext(ctx)).
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) FindByCell(ctx context.Context, timetableID string, day model.Weekday, timeSlotID, divisionID string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("timetable_id = ? AND day = ? AND time_slot_id = ? AND division_id = ?",
			timetableID, day, timeSlotID, divisionID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByTimetable 一次性加载版本全部排课及其引用（网格投影只查询一次）
func (r *entryRepo) ListByTimetable(ctx context.Context, timetableID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.preloadRefs(r.db.WithContext(ctx)).
		Where("timetable_id = ?", timetableID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *entryRepo) Update(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where("entry_id = ?", entry.EntryID).
		Updates(map[string]interface{}{
			"subject_id": entry.SubjectID,
			"faculty_id": entry.FacultyID,
			"room_id":    entry.RoomID,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *entryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.TimetableEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entryRepo) ClearReference(ctx context.Context, column string, id string) error {
	if !clearableColumns[column] {
		return fmt.Errorf("ClearReference: unsupported column %q", column)
	}
	return r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where(column+" = ?", id).
		Update(column, nil).Error
}

func (r *entryRepo) preloadRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Subject").Preload("Faculty").Preload("Room")
}
