// Package progression holds the rolling day-sequence rules: which day follows which,
// when a day's session counts as done, and what a check-out does to the plan.
// Everything here is pure; the stores that apply it live in the progress and sessions packages.
package progression

import "fmt"

// NextDay returns the plan day after current. Days are cyclic: the day after the last one is 1.
// An empty plan (maxDay <= 0) always yields day 1.
func NextDay(current, maxDay int) int {
	if maxDay <= 0 {
		return 1
	}
	if current >= maxDay {
		return 1
	}
	return current + 1
}

// ClampDay keeps a stored day pointer inside [1, maxDay] once a plan exists,
// e.g. after the owner removed the last days of a user's plan.
func ClampDay(day, maxDay int) int {
	if day < 1 {
		return 1
	}
	if maxDay > 0 && day > maxDay {
		return 1
	}
	return day
}

type State string

const (
	StateIdle       State = "idle"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

type CompletionRule string

const (
	// MatchIdentity requires every scheduled exercise to be among the completed ones.
	MatchIdentity CompletionRule = "identity"
	// MatchCount only compares the number of completed exercises with the number of scheduled entries.
	MatchCount CompletionRule = "count"
)

func ParseCompletionRule(s string) (CompletionRule, error) {
	switch CompletionRule(s) {
	case MatchIdentity, "":
		return MatchIdentity, nil
	case MatchCount:
		return MatchCount, nil
	default:
		return "", fmt.Errorf("unknown completion rule: %s", s)
	}
}

// IsDone reports whether completed covers scheduled under the rule.
// A day with nothing scheduled is never done.
func (r CompletionRule) IsDone(completed, scheduled []int) bool {
	if len(scheduled) == 0 {
		return false
	}

	if r == MatchCount {
		return len(uniqueIDs(completed)) >= len(scheduled)
	}

	done := uniqueIDs(completed)
	for _, id := range scheduled {
		if _, ok := done[id]; !ok {
			return false
		}
	}
	return true
}

// StateOf maps a day's session to the engine state. open is false when there is no open session.
func StateOf(open bool, completed, scheduled []int, rule CompletionRule) State {
	if !open {
		return StateIdle
	}
	if rule.IsDone(completed, scheduled) {
		return StateComplete
	}
	return StateInProgress
}

type CheckoutPolicy string

const (
	// CheckoutNever keeps check-out as attendance only, sessions are the single advancement trigger.
	CheckoutNever CheckoutPolicy = "never"
	// CheckoutAlways advances the day on every check-out, regardless of what was logged.
	CheckoutAlways CheckoutPolicy = "always"
	// CheckoutWhenComplete closes (and advances) the current day on check-out only if it is done.
	CheckoutWhenComplete CheckoutPolicy = "when_complete"
)

func ParseCheckoutPolicy(s string) (CheckoutPolicy, error) {
	switch CheckoutPolicy(s) {
	case CheckoutNever, "":
		return CheckoutNever, nil
	case CheckoutAlways:
		return CheckoutAlways, nil
	case CheckoutWhenComplete:
		return CheckoutWhenComplete, nil
	default:
		return "", fmt.Errorf("unknown checkout policy: %s", s)
	}
}

func uniqueIDs(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
