//go:build integration_test || all_tests

package test

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
	"github.com/2beens/gymlog/internal/gymlog/sequence"
	"github.com/2beens/gymlog/internal/gymlog/sessions"
)

func (s *IntegrationTestSuite) logExercise(token string, exerciseID int, completed bool) sessions.LogResult {
	var result sessions.LogResult
	status := s.do("POST", "/workout-sessions", token, sessions.LogExerciseRequest{
		ExerciseID: exerciseID,
		Completed:  completed,
	}, &result)
	require.Equal(s.T(), http.StatusOK, status)
	return result
}

func (s *IntegrationTestSuite) TestSequence_AddEntryAndReorder() {
	t := s.T()
	user, userToken := s.newUser()
	exA := s.newExercise(exercises.CategoryBack)
	exB := s.newExercise(exercises.CategoryChest)
	exC := s.newExercise(exercises.CategoryLeg)

	// empty day starts at sort order 0
	entryA := s.addToSequence(user.ID, exA.ID, 1)
	entryB := s.addToSequence(user.ID, exB.ID, 1)
	entryC := s.addToSequence(user.ID, exC.ID, 1)
	assert.Equal(t, 0, entryA.SortOrder)
	assert.Equal(t, 1, entryB.SortOrder)
	assert.Equal(t, 2, entryC.SortOrder)

	status := s.do("PUT", "/workout-sequence/reorder", s.ownerToken, sequence.ReorderRequest{
		UserID:    user.ID,
		DayNumber: 1,
		EntryIDs:  []int{entryC.ID, entryA.ID, entryB.ID},
	}, nil)
	require.Equal(t, http.StatusOK, status)

	// re-reading is stable, and the user sees the same order
	for i := 0; i < 2; i++ {
		var seq sequence.SequenceResponse
		status = s.do("GET", "/workout-sequence", userToken, nil, &seq)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, seq.Days, 1)
		assert.Equal(t, 1, seq.MaxDay)
		var ids []int
		for _, e := range seq.Days[0].Entries {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []int{entryC.ID, entryA.ID, entryB.ID}, ids)
	}

	// not a permutation of the day: rejected, order untouched
	status = s.do("PUT", "/workout-sequence/reorder", s.ownerToken, sequence.ReorderRequest{
		UserID:    user.ID,
		DayNumber: 1,
		EntryIDs:  []int{entryA.ID, entryB.ID},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// users cannot edit their own plan
	status = s.do("PUT", "/workout-sequence/reorder", userToken, sequence.ReorderRequest{
		UserID:    user.ID,
		DayNumber: 1,
		EntryIDs:  []int{entryA.ID, entryB.ID, entryC.ID},
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func (s *IntegrationTestSuite) TestProgression_CompleteDaysAndWrapAround() {
	t := s.T()
	user, userToken := s.newUser()
	exA := s.newExercise(exercises.CategoryBack)
	exB := s.newExercise(exercises.CategoryChest)
	exC := s.newExercise(exercises.CategoryLeg)
	s.addToSequence(user.ID, exA.ID, 1)
	s.addToSequence(user.ID, exB.ID, 1)
	s.addToSequence(user.ID, exC.ID, 2)

	var p progress.Progress
	require.Equal(t, http.StatusOK, s.do("GET", "/user-progress", userToken, nil, &p))
	assert.Equal(t, 1, p.CurrentDayNumber)
	assert.Equal(t, 0, p.TotalWorkoutsCompleted)

	result := s.logExercise(userToken, exA.ID, true)
	assert.False(t, result.Closed)
	assert.Equal(t, []int{exA.ID}, result.Session.ExercisesCompleted)
	assert.Equal(t, 1, result.Progress.CurrentDayNumber)

	// unmark and mark again restores the set
	result = s.logExercise(userToken, exA.ID, false)
	assert.Empty(t, result.Session.ExercisesCompleted)
	result = s.logExercise(userToken, exA.ID, true)
	assert.Equal(t, []int{exA.ID}, result.Session.ExercisesCompleted)

	var dayStatus sessions.DayStatus
	require.Equal(t, http.StatusOK, s.do("GET", "/workout-sessions", userToken, nil, &dayStatus))
	assert.Equal(t, progression.StateInProgress, dayStatus.State)

	result = s.logExercise(userToken, exB.ID, true)
	assert.True(t, result.Closed)
	assert.True(t, result.Session.IsComplete)
	assert.Equal(t, 2, result.Progress.CurrentDayNumber)
	assert.Equal(t, 1, result.Progress.TotalWorkoutsCompleted)

	// day 2 is the last day, completing it wraps around
	result = s.logExercise(userToken, exC.ID, true)
	assert.True(t, result.Closed)
	assert.Equal(t, 1, result.Progress.CurrentDayNumber)
	assert.Equal(t, 2, result.Progress.TotalWorkoutsCompleted)

	var history []sessions.Session
	require.Equal(t, http.StatusOK, s.do("GET", "/workout-sessions/history", userToken, nil, &history))
	require.Len(t, history, 2)
	for _, session := range history {
		assert.True(t, session.IsComplete)
	}

	var count int
	require.NoError(t, s.DB.QueryRow(
		"SELECT count(*) FROM workout_sessions WHERE user_id = $1 AND is_complete = false", user.ID,
	).Scan(&count))
	assert.Zero(t, count)
}

func (s *IntegrationTestSuite) TestProgression_OwnerOverrides() {
	t := s.T()
	user, userToken := s.newUser()
	exA := s.newExercise(exercises.CategoryArm)
	exB := s.newExercise(exercises.CategoryShoulder)
	s.addToSequence(user.ID, exA.ID, 1)
	s.addToSequence(user.ID, exB.ID, 2)

	var p progress.Progress
	status := s.do("POST", "/user-progress/day", s.ownerToken, progress.ProgressRequest{UserID: user.ID, DayNumber: 2}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, p.CurrentDayNumber)

	status = s.do("POST", "/user-progress/day", s.ownerToken, progress.ProgressRequest{UserID: user.ID, DayNumber: 3}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = s.do("POST", "/user-progress", userToken, progress.ProgressRequest{}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, p.CurrentDayNumber)
	assert.Equal(t, 1, p.TotalWorkoutsCompleted)

	status = s.do("POST", "/user-progress/reset", s.ownerToken, progress.ProgressRequest{UserID: user.ID}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, p.CurrentDayNumber)
	assert.Zero(t, p.TotalWorkoutsCompleted)
	assert.Nil(t, p.LastWorkoutDate)
}

func (s *IntegrationTestSuite) TestProgress_GetOrCreateConcurrently() {
	t := s.T()
	user, userToken := s.newUser()

	var wg sync.WaitGroup
	statuses := make(chan int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := http.NewRequest("GET", fmt.Sprintf("%s/user-progress", serverEndpoint), nil)
			if err != nil {
				statuses <- 0
				return
			}
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("X-GYMLOG-TOKEN", userToken)
			resp, err := s.httpClient.Do(req)
			if err != nil {
				statuses <- 0
				return
			}
			_ = resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}

	var rows int
	require.NoError(t, s.DB.QueryRow("SELECT count(*) FROM user_progress WHERE user_id = $1", user.ID).Scan(&rows))
	assert.Equal(t, 1, rows)
}
