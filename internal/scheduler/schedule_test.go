package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sport-log/sport-log-server/internal/domain"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts.UTC()
}

func TestDatetimesForRule_WeekdayMath(t *testing.T) {
	rule := domain.CreatableActionRule{
		Weekday:      domain.Monday,
		Time:         mustParse(t, "2000-01-01T12:00:00"),
		CreateBefore: 14 * 24 * time.Hour,
	}

	// 2023-01-01 is a Sunday.
	got := DatetimesForRule(rule, mustParse(t, "2023-01-01T00:00:00"))
	want := []time.Time{
		mustParse(t, "2023-01-02T12:00:00"),
		mustParse(t, "2023-01-09T12:00:00"),
	}
	assert.Equal(t, want, got)
}

func TestDatetimesForRule_SameDayCutoff(t *testing.T) {
	rule := domain.CreatableActionRule{
		Weekday:      domain.Monday,
		Time:         mustParse(t, "2000-01-01T12:00:00"),
		CreateBefore: 14 * 24 * time.Hour,
	}

	// 2023-01-02 is a Monday; one second past today's 12:00 rolls to next week.
	got := DatetimesForRule(rule, mustParse(t, "2023-01-02T12:00:01"))
	want := []time.Time{
		mustParse(t, "2023-01-09T12:00:00"),
		mustParse(t, "2023-01-16T12:00:00"),
	}
	assert.Equal(t, want, got)
}

func TestDatetimesForRule_EmptyWhenCreateBeforeTooSmall(t *testing.T) {
	rule := domain.CreatableActionRule{
		Weekday:      domain.Friday,
		Time:         mustParse(t, "2000-01-01T08:00:00"),
		CreateBefore: time.Hour,
	}

	got := DatetimesForRule(rule, mustParse(t, "2023-01-01T00:00:00"))
	assert.Empty(t, got)
}

func TestDatetimesForRule_ExactWeekdayMatchNoTimeBump(t *testing.T) {
	rule := domain.CreatableActionRule{
		Weekday:      domain.Sunday,
		Time:         mustParse(t, "2000-01-01T00:00:00"),
		CreateBefore: 0,
	}

	// 2023-01-01T00:00:00 is itself the Sunday/midnight occurrence.
	got := DatetimesForRule(rule, mustParse(t, "2023-01-01T00:00:00"))
	want := []time.Time{mustParse(t, "2023-01-01T00:00:00")}
	assert.Equal(t, want, got)
}
