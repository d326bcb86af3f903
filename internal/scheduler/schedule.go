// Package scheduler implements the periodic batch job that expands
// ActionRules into ActionEvents, expires old events, and garbage collects
// tombstones (§4.2).
package scheduler

import (
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
)

// DatetimesForRule expands a CreatableActionRule against the current time.
func DatetimesForRule(rule domain.CreatableActionRule, now time.Time) []time.Time {
	return datetimesForRuleFromStart(rule, now)
}

// datetimesForRuleFromStart is the scheduler's weekday-expansion algorithm
// (§4.2, §8 invariant 2, boundary scenarios 1-2), grounded directly on the
// original's datetimes_for_rule_from_start: find the first occurrence of
// rule's weekday/time at or after start (bumping a day ahead first if
// start's time-of-day has already passed rule's time-of-day on the same
// day), then step forward one week at a time while each occurrence still
// falls within [start, start + create_before].
func datetimesForRuleFromStart(rule domain.CreatableActionRule, start time.Time) []time.Time {
	start = start.UTC()
	ruleTimeOfDay := rule.Time.UTC()

	if timeOfDayAfter(start, ruleTimeOfDay) {
		start = start.AddDate(0, 0, 1)
	}

	daysUntilWeekday := weekdayDelta(domain.FromTimeWeekday(start.Weekday()), rule.Weekday)
	firstDate := start.AddDate(0, 0, daysUntilWeekday)
	firstDatetime := atTimeOfDay(firstDate, ruleTimeOfDay)

	deadline := start.Add(rule.CreateBefore)

	var out []time.Time
	for week := 0; ; week++ {
		dt := firstDatetime.AddDate(0, 0, 7*week)
		if dt.After(deadline) {
			break
		}
		out = append(out, dt)
	}
	return out
}

// timeOfDayAfter reports whether start's time-of-day is strictly after
// ruleTime's time-of-day, ignoring their respective dates.
func timeOfDayAfter(start, ruleTime time.Time) bool {
	sh, sm, ss := start.Clock()
	rh, rm, rs := ruleTime.Clock()
	return sh > rh || (sh == rh && (sm > rm || (sm == rm && ss > rs)))
}

// weekdayDelta computes (to - from) mod 7, matching the original's
// `.rem_euclid(7)` — always non-negative, 0 when the weekdays already match.
func weekdayDelta(from, to domain.Weekday) int {
	delta := (int(to) - int(from)) % 7
	if delta < 0 {
		delta += 7
	}
	return delta
}

// atTimeOfDay returns date's day combined with timeOfDay's clock components,
// in UTC — matching the original's `.and_time(rule.time.time())`.
func atTimeOfDay(date, timeOfDay time.Time) time.Time {
	h, m, s := timeOfDay.Clock()
	ns := timeOfDay.Nanosecond()
	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, s, ns, time.UTC)
}
