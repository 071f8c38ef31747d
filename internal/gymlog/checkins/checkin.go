package checkins

import (
	"errors"
	"time"

	"github.com/2beens/gymlog/internal/gymlog/progress"
	"github.com/2beens/gymlog/internal/gymlog/progression"
)

var (
	ErrNoOpenCheckIn     = errors.New("no open check-in")
	ErrOpenCheckInExists = errors.New("user is already checked in")
	ErrUnknownUser       = errors.New("user not found")
	ErrInvalidPeriod     = errors.New("from must not be after to")
)

type CheckIn struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time"`
	DurationMinutes *int       `json:"duration_minutes"`
}

func (c *CheckIn) IsOpen() bool {
	return c.CheckOutTime == nil
}

// CheckOutResult tells what a check-out did to the plan under the configured policy.
type CheckOutResult struct {
	CheckIn  *CheckIn                   `json:"check_in"`
	Policy   progression.CheckoutPolicy `json:"policy"`
	Advanced bool                       `json:"advanced"`
	Progress *progress.Progress         `json:"progress,omitempty"`
}

// DurationMinutes is the whole minutes between check-in and check-out, rounded down.
func DurationMinutes(in, out time.Time) int {
	d := out.Sub(in)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
