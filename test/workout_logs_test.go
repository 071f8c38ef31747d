//go:build integration_test || all_tests

package test

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/gymlog/analytics"
	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/gymlog/workoutlogs"
)

func (s *IntegrationTestSuite) TestWorkoutLogs_UpsertAndMarkComplete() {
	t := s.T()
	user, userToken := s.newUser()
	exA := s.newExercise(exercises.CategoryLeg)
	s.addToSequence(user.ID, exA.ID, 1)
	s.addToSequence(user.ID, exA.ID, 2)

	sets, reps := 3, 8
	var saved workoutlogs.SaveResult
	status := s.do("POST", "/workout-logs", userToken, workoutlogs.SaveLogRequest{
		ExerciseID: exA.ID,
		ActualSets: &sets,
		ActualReps: &reps,
		Weight:     60,
		Date:       "2026-10-12",
	}, &saved)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, saved.Created)
	assert.Nil(t, saved.Session)
	assert.Equal(t, []workoutlogs.SetData{}, saved.Log.SetsData)

	reps = 10
	var updated workoutlogs.SaveResult
	status = s.do("POST", "/workout-logs", userToken, workoutlogs.SaveLogRequest{
		ExerciseID:   exA.ID,
		ActualSets:   &sets,
		ActualReps:   &reps,
		Weight:       62.5,
		Date:         "2026-10-12",
		MarkComplete: true,
		SetsData: []workoutlogs.SetData{
			{SetNumber: 1, TargetReps: 10, ActualReps: 10, ActualWeight: 62.5, Completed: true},
		},
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, updated.Created)
	assert.Equal(t, saved.Log.ID, updated.Log.ID)
	assert.Equal(t, 10, updated.Log.ActualReps)
	assert.Equal(t, 62.5, updated.Log.Weight)
	require.Len(t, updated.Log.SetsData, 1)

	// marking the only exercise of day 1 closes it
	require.NotNil(t, updated.Session)
	assert.True(t, updated.Session.Closed)
	assert.Equal(t, 2, updated.Session.Progress.CurrentDayNumber)

	var logs []workoutlogs.WorkoutLog
	status = s.do("GET", fmt.Sprintf("/workout-logs?exercise_id=%d", exA.ID), userToken, nil, &logs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, logs, 1)
	assert.Equal(t, exA.Name, logs[0].ExerciseName)

	var summary analytics.Summary
	require.Equal(t, http.StatusOK, s.do("GET", "/analytics/summary", userToken, nil, &summary))
	assert.Equal(t, 1, summary.TotalExercises)
	assert.Equal(t, 30, summary.TotalReps)

	// another user cannot touch the log
	_, otherToken := s.newUser()
	status = s.do("PUT", fmt.Sprintf("/workout-logs/%d", saved.Log.ID), otherToken, workoutlogs.UpdateLogRequest{
		ActualSets: &sets,
		ActualReps: &reps,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = s.do("DELETE", fmt.Sprintf("/workout-logs?id=%d", saved.Log.ID), userToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = s.do("DELETE", fmt.Sprintf("/workout-logs?id=%d", saved.Log.ID), userToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
