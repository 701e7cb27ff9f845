package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/model"
)

// TimetableRepository 课表版本数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, tt *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	GetActive(ctx context.Context) (*model.Timetable, error)
	List(ctx context.Context, offset, limit int) ([]model.Timetable, int64, error)
	SetActive(ctx context.Context, id string) error
	ClearActive(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, tt *model.Timetable) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var tt model.Timetable
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *timetableRepo) GetActive(ctx context.Context) (*model.Timetable, error) {
	var tt model.Timetable
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// List 版本历史（最新在前）；limit<=0 时不分页
func (r *timetableRepo) List(ctx context.Context, offset, limit int) ([]model.Timetable, int64, error) {
	var (
		list  []model.Timetable
		total int64
	)
	query := r.db.WithContext(ctx).Model(&model.Timetable{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SetActive 将指定版本置为活动；须与 ClearActive 在同一事务中调用
func (r *timetableRepo) SetActive(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Timetable{}).
		Where("timetable_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearActive 将所有版本的 is_active 设为 false
func (r *timetableRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Timetable{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// Delete 硬删除版本，节次/班级/排课由外键级联删除
func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Delete(&model.Timetable{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
