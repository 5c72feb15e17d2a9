package db

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hidaya-tech/mizan/internal/model"
)

// MemStore is an in-memory Store used by handler tests and local
// development without a database. Lookups that miss return
// sql.ErrNoRows to mirror pgStore.
type MemStore struct {
	mu sync.Mutex

	nextUserID int
	nextRowID  int

	users      map[int]*model.User
	timings    map[string]model.PrayerTiming
	attendance map[string]model.PrayerAttendance
	qaza       []model.QazaRecord
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		nextUserID: 1,
		nextRowID:  1,
		users:      map[int]*model.User{},
		timings:    map[string]model.PrayerTiming{},
		attendance: map[string]model.PrayerAttendance{},
	}
}

func attendanceKey(userID int, date, sessionType string) string {
	return fmt.Sprintf("%d|%s|%s", userID, date, sessionType)
}

func (s *MemStore) CreateUser(email, hashedPassword, role string, displayName, fatherName, cnic, address *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextUserID
	s.nextUserID++
	now := time.Now()
	s.users[id] = &model.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		DisplayName:    displayName,
		FatherName:     fatherName,
		CNIC:           cnic,
		Address:        address,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id, nil
}

func (s *MemStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *MemStore) GetUserByID(id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (s *MemStore) ListUsers() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) UpdateUserProfile(id int, displayName, fatherName, cnic, address *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.DisplayName = displayName
	u.FatherName = fatherName
	u.CNIC = cnic
	u.Address = address
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.users, id)
	return nil
}

func (s *MemStore) MarkFirstLogin(id int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	if u.FirstLoginAt == nil {
		stamped := at
		u.FirstLoginAt = &stamped
	}
	return nil
}

func (s *MemStore) UpsertTiming(t model.PrayerTiming) (model.PrayerTiming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timings[t.Date]; ok {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	} else {
		t.ID = s.nextRowID
		s.nextRowID++
		t.CreatedAt = time.Now()
	}
	s.timings[t.Date] = t
	return t, nil
}

func (s *MemStore) GetTimingByDate(date string) (*model.PrayerTiming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timings[date]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (s *MemStore) ListTimings() ([]model.PrayerTiming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PrayerTiming, 0, len(s.timings))
	for _, t := range s.timings {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemStore) ListTimingsBetween(from, to string) ([]model.PrayerTiming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.PrayerTiming
	for _, t := range s.timings {
		if t.Date >= from && t.Date <= to {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemStore) DeleteTiming(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timings[date]; !ok {
		return sql.ErrNoRows
	}
	delete(s.timings, date)
	return nil
}

func (s *MemStore) UpsertAttendance(a model.PrayerAttendance) (model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := attendanceKey(a.UserID, a.Date, a.SessionType)
	now := time.Now()
	if existing, ok := s.attendance[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		a.ID = s.nextRowID
		s.nextRowID++
		a.CreatedAt = now
	}
	a.Status = model.StatusAda
	a.UpdatedAt = now
	s.attendance[key] = a
	return a, nil
}

func (s *MemStore) GetAttendance(userID int, date, sessionType string) (*model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attendance[attendanceKey(userID, date, sessionType)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (s *MemStore) listAttendance(match func(model.PrayerAttendance) bool) []model.PrayerAttendance {
	var out []model.PrayerAttendance
	for _, a := range s.attendance {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].SessionType < out[j].SessionType
	})
	return out
}

func (s *MemStore) ListAttendanceForDate(userID int, date string) ([]model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listAttendance(func(a model.PrayerAttendance) bool {
		return a.UserID == userID && a.Date == date
	}), nil
}

func (s *MemStore) ListAttendanceForUser(userID int) ([]model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listAttendance(func(a model.PrayerAttendance) bool {
		return a.UserID == userID
	}), nil
}

func (s *MemStore) ListAttendanceBetween(userID int, from, to string) ([]model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listAttendance(func(a model.PrayerAttendance) bool {
		return a.UserID == userID && a.Date >= from && a.Date <= to
	}), nil
}

func (s *MemStore) ListAllAttendance() ([]model.PrayerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listAttendance(func(model.PrayerAttendance) bool { return true }), nil
}

func (s *MemStore) CreateQaza(q model.QazaRecord) (model.QazaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = s.nextRowID
	s.nextRowID++
	now := time.Now()
	if q.MarkedAt.IsZero() {
		q.MarkedAt = now
	}
	q.CreatedAt = now
	s.qaza = append(s.qaza, q)
	return q, nil
}

func (s *MemStore) listQaza(match func(model.QazaRecord) bool) []model.QazaRecord {
	var out []model.QazaRecord
	for _, q := range s.qaza {
		if match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].SessionType < out[j].SessionType
	})
	return out
}

func (s *MemStore) ListQazaForUser(userID int) ([]model.QazaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listQaza(func(q model.QazaRecord) bool { return q.UserID == userID }), nil
}

func (s *MemStore) ListQazaBetween(userID int, from, to string) ([]model.QazaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listQaza(func(q model.QazaRecord) bool {
		return q.UserID == userID && q.Date >= from && q.Date <= to
	}), nil
}

func (s *MemStore) ListAllQaza() ([]model.QazaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listQaza(func(model.QazaRecord) bool { return true }), nil
}
