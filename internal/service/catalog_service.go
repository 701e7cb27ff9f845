package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
	"github.com/krishpatel1827/EduSync/internal/repository"
)

// CatalogService 参考数据（科目 / 教师 / 教室）业务接口
//
// 参考数据不随课表版本复制，被所有版本共享；
// 删除时在同一事务内将排课中的引用置空，单元格对应行降级为空行。
type CatalogService interface {
	CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, id string) error

	CreateFaculty(ctx context.Context, req *dto.FacultyRequest) (*dto.FacultyResponse, error)
	ListFaculties(ctx context.Context) ([]dto.FacultyResponse, error)
	UpdateFaculty(ctx context.Context, id string, req *dto.FacultyRequest) (*dto.FacultyResponse, error)
	DeleteFaculty(ctx context.Context, id string) error

	CreateRoom(ctx context.Context, req *dto.RoomRequest) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, id string, req *dto.RoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, id string) error
}

type catalogService struct {
	repo   *repository.Repository
	cache  *gridCacheGuard
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, cache *gridCacheGuard, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── 科目 ──────────────────────

func (s *catalogService) CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject := &model.Subject{Name: strings.TrimSpace(req.Name), Code: strings.TrimSpace(req.Code)}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	list, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(list))
	for i := range list {
		result = append(result, *toSubjectResponse(&list[i]))
	}
	return result, nil
}

func (s *catalogService) UpdateSubject(ctx context.Context, id string, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	subject.Name = strings.TrimSpace(req.Name)
	subject.Code = strings.TrimSpace(req.Code)
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 科目代码出现在网格文本中
	s.cache.invalidateAll(ctx)
	return toSubjectResponse(subject), nil
}

func (s *catalogService) DeleteSubject(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "subject_id", id, ErrSubjectNotFound, func(r *repository.Repository) error {
		return r.Subject.Delete(ctx, id)
	})
}

// ────────────────────── 教师 ──────────────────────

func (s *catalogService) CreateFaculty(ctx context.Context, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	faculty := &model.Faculty{Name: strings.TrimSpace(req.Name), Initials: strings.TrimSpace(req.Initials)}
	if err := s.repo.Faculty.Create(ctx, faculty); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(faculty), nil
}

func (s *catalogService) ListFaculties(ctx context.Context) ([]dto.FacultyResponse, error) {
	list, err := s.repo.Faculty.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.FacultyResponse, 0, len(list))
	for i := range list {
		result = append(result, *toFacultyResponse(&list[i]))
	}
	return result, nil
}

func (s *catalogService) UpdateFaculty(ctx context.Context, id string, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	faculty.Name = strings.TrimSpace(req.Name)
	faculty.Initials = strings.TrimSpace(req.Initials)
	if err := s.repo.Faculty.Update(ctx, faculty); err != nil {
		s.logger.Error("更新教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.invalidateAll(ctx)
	return toFacultyResponse(faculty), nil
}

func (s *catalogService) DeleteFaculty(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "faculty_id", id, ErrFacultyNotFound, func(r *repository.Repository) error {
		return r.Faculty.Delete(ctx, id)
	})
}

// ────────────────────── 教室 ──────────────────────

func (s *catalogService) CreateRoom(ctx context.Context, req *dto.RoomRequest) (*dto.RoomResponse, error) {
	room := &model.Room{Number: strings.TrimSpace(req.Number)}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *catalogService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	list, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("列出教室失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomResponse, 0, len(list))
	for i := range list {
		result = append(result, *toRoomResponse(&list[i]))
	}
	return result, nil
}

func (s *catalogService) UpdateRoom(ctx context.Context, id string, req *dto.RoomRequest) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	room.Number = strings.TrimSpace(req.Number)
	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("更新教室失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.invalidateAll(ctx)
	return toRoomResponse(room), nil
}

func (s *catalogService) DeleteRoom(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "room_id", id, ErrRoomNotFound, func(r *repository.Repository) error {
		return r.Room.Delete(ctx, id)
	})
}

// deleteReferenced 同一事务内：置空排课引用 → 删除参考数据
func (s *catalogService) deleteReferenced(ctx context.Context, column, id string, notFound error, del func(r *repository.Repository) error) error {
	err := s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Entry.ClearReference(ctx, column, id); err != nil {
			return err
		}
		return del(txRepo)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		s.logger.Error("删除参考数据失败", zap.String("column", column), zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.invalidateAll(ctx)
	return nil
}

// ── 转换 ──

func toSubjectResponse(m *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{ID: m.SubjectID, Name: m.Name, Code: m.Code}
}

func toFacultyResponse(m *model.Faculty) *dto.FacultyResponse {
	return &dto.FacultyResponse{ID: m.FacultyID, Name: m.Name, Initials: m.Initials}
}

func toRoomResponse(m *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{ID: m.RoomID, Number: m.Number}
}
