package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/model"
)

// TimeSlotRepository 节次数据访问接口
type TimeSlotRepository interface {
	BatchCreate(ctx context.Context, slots []model.TimeSlot) error
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	ListByTimetable(ctx context.Context, timetableID string) ([]model.TimeSlot, error)
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) BatchCreate(ctx context.Context, slots []model.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("time_slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListByTimetable 按 sequence_number 升序返回节次
func (r *timeSlotRepo) ListByTimetable(ctx context.Context, timetableID string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", timetableID).
		Order("sequence_number ASC").
		Find(&slots).Error
	return slots, err
}
