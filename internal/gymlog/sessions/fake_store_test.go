package sessions_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/gymlog/sessions"
)

// memStore keeps sessions, one user's plan and progress in memory, with the same
// conditional-close semantics as the postgres repo.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	sessions []*sessions.Session
	plan     map[int][]int // day -> exercise ids
	progress map[int]*progress.Progress
	advances int
}

func newMemStore(plan map[int][]int) *memStore {
	return &memStore{
		plan:     plan,
		progress: make(map[int]*progress.Progress),
	}
}

func copySession(s *sessions.Session) *sessions.Session {
	c := *s
	c.ExercisesCompleted = slices.Clone(s.ExercisesCompleted)
	return &c
}

func (m *memStore) findOpen(userID, dayNumber int) *sessions.Session {
	for i := len(m.sessions) - 1; i >= 0; i-- {
		s := m.sessions[i]
		if s.UserID == userID && s.DayNumber == dayNumber && !s.IsComplete {
			return s
		}
	}
	return nil
}

func (m *memStore) FindOpen(_ context.Context, userID, dayNumber int) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.findOpen(userID, dayNumber); s != nil {
		return copySession(s), nil
	}
	return nil, nil
}

func (m *memStore) Create(_ context.Context, userID, dayNumber int, completed []int) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findOpen(userID, dayNumber) != nil {
		return nil, sessions.ErrOpenSessionExists
	}
	m.nextID++
	if completed == nil {
		completed = []int{}
	}
	s := &sessions.Session{
		ID:                 m.nextID,
		UserID:             userID,
		DayNumber:          dayNumber,
		ExercisesCompleted: slices.Clone(completed),
		StartedAt:          time.Now(),
	}
	m.sessions = append(m.sessions, s)
	return copySession(s), nil
}

func (m *memStore) byID(id int) *sessions.Session {
	for _, s := range m.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (m *memStore) AddExercise(_ context.Context, sessionID, exerciseID int) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID(sessionID)
	if s == nil || s.IsComplete {
		return nil, sessions.ErrSessionClosed
	}
	if !slices.Contains(s.ExercisesCompleted, exerciseID) {
		s.ExercisesCompleted = append(s.ExercisesCompleted, exerciseID)
	}
	return copySession(s), nil
}

func (m *memStore) RemoveExercise(_ context.Context, sessionID, exerciseID int) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID(sessionID)
	if s == nil || s.IsComplete {
		return nil, sessions.ErrSessionClosed
	}
	s.ExercisesCompleted = slices.DeleteFunc(s.ExercisesCompleted, func(id int) bool { return id == exerciseID })
	return copySession(s), nil
}

func (m *memStore) Close(_ context.Context, sessionID int) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.byID(sessionID)
	if s == nil || s.IsComplete {
		return nil, nil
	}
	now := time.Now()
	s.IsComplete = true
	s.CompletedAt = &now
	return copySession(s), nil
}

func (m *memStore) List(_ context.Context, userID, dayNumber, limit int) ([]sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []sessions.Session
	for i := len(m.sessions) - 1; i >= 0 && len(list) < limit; i-- {
		s := m.sessions[i]
		if s.UserID == userID && (dayNumber == 0 || s.DayNumber == dayNumber) {
			list = append(list, *copySession(s))
		}
	}
	return list, nil
}

func (m *memStore) ScheduledExerciseIDs(_ context.Context, _ int, dayNumber int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.plan[dayNumber]), nil
}

func (m *memStore) maxDay() int {
	max := 0
	for day := range m.plan {
		if day > max {
			max = day
		}
	}
	return max
}

func (m *memStore) getOrCreate(userID int) *progress.Progress {
	p, ok := m.progress[userID]
	if !ok {
		p = &progress.Progress{UserID: userID, CurrentDayNumber: 1}
		m.progress[userID] = p
	}
	return p
}

func (m *memStore) GetOrCreate(_ context.Context, userID int) (*progress.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *m.getOrCreate(userID)
	p.MaxDay = m.maxDay()
	return &p, nil
}

func (m *memStore) CompleteDay(_ context.Context, userID, dayNumber int) (*progress.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.getOrCreate(userID)
	maxDay := m.maxDay()
	if maxDay > 0 {
		p.CurrentDayNumber = progression.NextDay(progression.ClampDay(dayNumber, maxDay), maxDay)
		p.TotalWorkoutsCompleted++
		m.advances++
	}
	c := *p
	c.MaxDay = maxDay
	return &c, nil
}
