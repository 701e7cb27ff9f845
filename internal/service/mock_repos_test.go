package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/model"
	"github.com/krishpatel1827/EduSync/internal/repository"
)

// ── 内存存储：各 mock repo 共享，以便预加载与级联置空 ──

type memStore struct {
	seq        int
	clock      time.Time
	timetables map[string]*model.Timetable
	slots      map[string]*model.TimeSlot
	divisions  map[string]*model.Division
	entries    map[string]*model.TimetableEntry
	subjects   map[string]*model.Subject
	faculties  map[string]*model.Faculty
	rooms      map[string]*model.Room

	// 故障注入
	failDivisionBatch error
}

func newMemStore() *memStore {
	return &memStore{
		clock:      time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		timetables: make(map[string]*model.Timetable),
		slots:      make(map[string]*model.TimeSlot),
		divisions:  make(map[string]*model.Division),
		entries:    make(map[string]*model.TimetableEntry),
		subjects:   make(map[string]*model.Subject),
		faculties:  make(map[string]*model.Faculty),
		rooms:      make(map[string]*model.Room),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

// tick 单调递增的创建时间，保证排序稳定
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newMockRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		Timetable: &mockTimetableRepo{store},
		Division:  &mockDivisionRepo{store},
		TimeSlot:  &mockTimeSlotRepo{store},
		Entry:     &mockEntryRepo{store},
		Subject:   &mockSubjectRepo{store},
		Faculty:   &mockFacultyRepo{store},
		Room:      &mockRoomRepo{store},
	}
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct{ s *memStore }

func (m *mockTimetableRepo) Create(_ context.Context, tt *model.Timetable) error {
	if tt.TimetableID == "" {
		tt.TimetableID = m.s.nextID("tt")
	}
	tt.CreatedAt = m.s.tick()
	m.s.timetables[tt.TimetableID] = tt
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if tt, ok := m.s.timetables[id]; ok {
		cp := *tt
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) GetActive(_ context.Context) (*model.Timetable, error) {
	for _, tt := range m.s.timetables {
		if tt.IsActive {
			cp := *tt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) List(_ context.Context, offset, limit int) ([]model.Timetable, int64, error) {
	var all []model.Timetable
	for _, tt := range m.s.timetables {
		all = append(all, *tt)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockTimetableRepo) SetActive(_ context.Context, id string) error {
	tt, ok := m.s.timetables[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	tt.IsActive = true
	return nil
}

func (m *mockTimetableRepo) ClearActive(_ context.Context) error {
	for _, tt := range m.s.timetables {
		tt.IsActive = false
	}
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.timetables[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.timetables, id)
	for k, v := range m.s.slots {
		if v.TimetableID == id {
			delete(m.s.slots, k)
		}
	}
	for k, v := range m.s.divisions {
		if v.TimetableID == id {
			delete(m.s.divisions, k)
		}
	}
	for k, v := range m.s.entries {
		if v.TimetableID == id {
			delete(m.s.entries, k)
		}
	}
	return nil
}

// ── Mock DivisionRepository ──

type mockDivisionRepo struct{ s *memStore }

func (m *mockDivisionRepo) BatchCreate(_ context.Context, divisions []model.Division) error {
	if m.s.failDivisionBatch != nil {
		return m.s.failDivisionBatch
	}
	for i := range divisions {
		d := &divisions[i]
		if d.DivisionID == "" {
			d.DivisionID = m.s.nextID("div")
		}
		d.CreatedAt = m.s.tick()
		cp := *d
		m.s.divisions[d.DivisionID] = &cp
	}
	return nil
}

func (m *mockDivisionRepo) GetByID(_ context.Context, id string) (*model.Division, error) {
	if d, ok := m.s.divisions[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDivisionRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.Division, error) {
	var result []model.Division
	for _, d := range m.s.divisions {
		if d.TimetableID == timetableID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct{ s *memStore }

func (m *mockTimeSlotRepo) BatchCreate(_ context.Context, slots []model.TimeSlot) error {
	for i := range slots {
		ts := &slots[i]
		if ts.TimeSlotID == "" {
			ts.TimeSlotID = m.s.nextID("slot")
		}
		cp := *ts
		m.s.slots[ts.TimeSlotID] = &cp
	}
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if ts, ok := m.s.slots[id]; ok {
		cp := *ts
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, ts := range m.s.slots {
		if ts.TimetableID == timetableID {
			result = append(result, *ts)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SequenceNumber < result[j].SequenceNumber })
	return result, nil
}

// ── Mock EntryRepository ──

type mockEntryRepo struct{ s *memStore }

func (m *mockEntryRepo) Create(_ context.Context, entry *model.TimetableEntry) error {
	for _, e := range m.s.entries {
		if e.TimetableID == entry.TimetableID && e.Day == entry.Day &&
			e.TimeSlotID == entry.TimeSlotID && e.DivisionID == entry.DivisionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if entry.EntryID == "" {
		entry.EntryID = m.s.nextID("entry")
	}
	entry.CreatedAt = m.s.tick()
	cp := *entry
	m.s.entries[entry.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.TimetableEntry, error) {
	e, ok := m.s.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.preload(e), nil
}

func (m *mockEntryRepo) FindByCell(_ context.Context, timetableID string, day model.Weekday, timeSlotID, divisionID string) (*model.TimetableEntry, error) {
	for _, e := range m.s.entries {
		if e.TimetableID == timetableID && e.Day == day && e.TimeSlotID == timeSlotID && e.DivisionID == divisionID {
			return m.preload(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.s.entries {
		if e.TimetableID == timetableID {
			result = append(result, *m.preload(e))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockEntryRepo) Update(_ context.Context, entry *model.TimetableEntry) error {
	e, ok := m.s.entries[entry.EntryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.SubjectID, e.FacultyID, e.RoomID = entry.SubjectID, entry.FacultyID, entry.RoomID
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.entries, id)
	return nil
}

func (m *mockEntryRepo) ClearReference(_ context.Context, column string, id string) error {
	for _, e := range m.s.entries {
		switch column {
		case "subject_id":
			if e.SubjectID != nil && *e.SubjectID == id {
				e.SubjectID = nil
			}
		case "faculty_id":
			if e.FacultyID != nil && *e.FacultyID == id {
				e.FacultyID = nil
			}
		case "room_id":
			if e.RoomID != nil && *e.RoomID == id {
				e.RoomID = nil
			}
		default:
			return errors.New("unsupported column")
		}
	}
	return nil
}

func (m *mockEntryRepo) preload(e *model.TimetableEntry) *model.TimetableEntry {
	cp := *e
	cp.Subject, cp.Faculty, cp.Room = nil, nil, nil
	if cp.SubjectID != nil {
		cp.Subject = m.s.subjects[*cp.SubjectID]
	}
	if cp.FacultyID != nil {
		cp.Faculty = m.s.faculties[*cp.FacultyID]
	}
	if cp.RoomID != nil {
		cp.Room = m.s.rooms[*cp.RoomID]
	}
	return &cp
}

// ── Mock 参考数据 Repository ──

type mockSubjectRepo struct{ s *memStore }

func (m *mockSubjectRepo) Create(_ context.Context, v *model.Subject) error {
	if v.SubjectID == "" {
		v.SubjectID = m.s.nextID("sub")
	}
	m.s.subjects[v.SubjectID] = v
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if v, ok := m.s.subjects[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, v := range m.s.subjects {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, v *model.Subject) error {
	m.s.subjects[v.SubjectID] = v
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.subjects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.subjects, id)
	return nil
}

type mockFacultyRepo struct{ s *memStore }

func (m *mockFacultyRepo) Create(_ context.Context, v *model.Faculty) error {
	if v.FacultyID == "" {
		v.FacultyID = m.s.nextID("fac")
	}
	m.s.faculties[v.FacultyID] = v
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if v, ok := m.s.faculties[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, v := range m.s.faculties {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Initials < result[j].Initials })
	return result, nil
}

func (m *mockFacultyRepo) Update(_ context.Context, v *model.Faculty) error {
	m.s.faculties[v.FacultyID] = v
	return nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.faculties[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.faculties, id)
	return nil
}

type mockRoomRepo struct{ s *memStore }

func (m *mockRoomRepo) Create(_ context.Context, v *model.Room) error {
	if v.RoomID == "" {
		v.RoomID = m.s.nextID("room")
	}
	m.s.rooms[v.RoomID] = v
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if v, ok := m.s.rooms[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, v := range m.s.rooms {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, v *model.Room) error {
	m.s.rooms[v.RoomID] = v
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.rooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.rooms, id)
	return nil
}

// ── Mock GridCache ──

type mockGridCache struct {
	grids       map[string]*dto.GridResponse
	gets        int
	invalidated []string
	err         error
}

func newMockGridCache() *mockGridCache {
	return &mockGridCache{grids: make(map[string]*dto.GridResponse)}
}

func (m *mockGridCache) GetGrid(_ context.Context, id string) (*dto.GridResponse, bool, error) {
	m.gets++
	if m.err != nil {
		return nil, false, m.err
	}
	g, ok := m.grids[id]
	return g, ok, nil
}

func (m *mockGridCache) SetGrid(_ context.Context, id string, grid *dto.GridResponse) error {
	if m.err != nil {
		return m.err
	}
	m.grids[id] = grid
	return nil
}

func (m *mockGridCache) InvalidateGrid(_ context.Context, id string) error {
	m.invalidated = append(m.invalidated, id)
	delete(m.grids, id)
	return m.err
}

func (m *mockGridCache) InvalidateAllGrids(_ context.Context) error {
	m.invalidated = append(m.invalidated, "*")
	m.grids = make(map[string]*dto.GridResponse)
	return m.err
}
