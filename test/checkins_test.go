//go:build integration_test || all_tests

package test

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/gymlog/checkins"
	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
)

func (s *IntegrationTestSuite) TestCheckIns_SingleOpenAndCheckOut() {
	t := s.T()
	user, userToken := s.newUser()
	exA := s.newExercise(exercises.CategoryBack)
	s.addToSequence(user.ID, exA.ID, 1)
	s.addToSequence(user.ID, exA.ID, 2)

	var open *checkins.CheckIn
	require.Equal(t, http.StatusOK, s.do("GET", "/check-ins/open", userToken, nil, &open))
	assert.Nil(t, open)

	var first, second checkins.CheckIn
	require.Equal(t, http.StatusCreated, s.do("POST", "/check-ins", userToken, nil, &first))
	require.Equal(t, http.StatusOK, s.do("POST", "/check-ins", userToken, nil, &second))
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.IsOpen())

	// checkout with nothing logged: attendance only under the default policy
	var result checkins.CheckOutResult
	require.Equal(t, http.StatusOK, s.do("POST", "/check-ins/out", userToken, nil, &result))
	assert.Equal(t, progression.CheckoutNever, result.Policy)
	assert.False(t, result.Advanced)
	require.NotNil(t, result.CheckIn.DurationMinutes)
	assert.Equal(t, 0, *result.CheckIn.DurationMinutes)

	var p progress.Progress
	require.Equal(t, http.StatusOK, s.do("GET", "/user-progress", userToken, nil, &p))
	assert.Equal(t, 1, p.CurrentDayNumber)

	assert.Equal(t, http.StatusBadRequest, s.do("POST", "/check-ins/out", userToken, nil, nil))

	var list []checkins.CheckIn
	require.Equal(t, http.StatusOK, s.do("GET", "/check-ins", userToken, nil, &list))
	require.Len(t, list, 1)
	assert.False(t, list[0].IsOpen())

	var rows int
	require.NoError(t, s.DB.QueryRow(
		"SELECT count(*) FROM check_ins WHERE user_id = $1 AND check_out_time IS NULL", user.ID,
	).Scan(&rows))
	assert.Zero(t, rows)
}
