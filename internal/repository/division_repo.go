package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/model"
)

// DivisionRepository 班级数据访问接口
type DivisionRepository interface {
	BatchCreate(ctx context.Context, divisions []model.Division) error
	GetByID(ctx context.Context, id string) (*model.Division, error)
	ListByTimetable(ctx context.Context, timetableID string) ([]model.Division, error)
}

type divisionRepo struct {
	db *gorm.DB
}

// NewDivisionRepo 创建 DivisionRepository 实例
func NewDivisionRepo(db *gorm.DB) DivisionRepository {
	return &divisionRepo{db: db}
}

func (r *divisionRepo) BatchCreate(ctx context.Context, divisions []model.Division) error {
	if len(divisions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&divisions).Error
}

func (r *divisionRepo) GetByID(ctx context.Context, id string) (*model.Division, error) {
	var div model.Division
	err := r.db.WithContext(ctx).
		Where("division_id = ?", id).
		First(&div).Error
	if err != nil {
		return nil, err
	}
	return &div, nil
}

// ListByTimetable 按录入顺序返回班级（网格列顺序）
func (r *divisionRepo) ListByTimetable(ctx context.Context, timetableID string) ([]model.Division, error) {
	var divisions []model.Division
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", timetableID).
		Order("position ASC, created_at ASC").
		Find(&divisions).Error
	return divisions, err
}
