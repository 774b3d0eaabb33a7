package recurrence

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		freq constants.Frequency
		n    int
		p    constants.Period
		want string
	}{
		{"daily", constants.FrequencyDaily, 0, "", "daily"},
		{"weekly", constants.FrequencyWeekly, 0, "", "weekly on Wed"}, // 2025-01-01 is a Wednesday
		{"monthly", constants.FrequencyMonthly, 0, "", "monthly on day 1"},
		{"every day", constants.FrequencyCustom, 1, constants.PeriodDay, "every day"},
		{"every 2 weeks", constants.FrequencyCustom, 2, constants.PeriodWeek, "every 2 weeks"},
		{"every 3 months", constants.FrequencyCustom, 3, constants.PeriodMonth, "every 3 months"},
		{"bad custom", constants.FrequencyCustom, 0, constants.PeriodDay, "custom (invalid)"},
		{"bad period", constants.FrequencyCustom, 2, "year", "custom (invalid)"},
		{"unknown", "hourly", 0, "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := custom(t, tt.n, tt.p, "2025-01-01")
			h.Frequency = tt.freq
			if got := Describe(h); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextReminder(t *testing.T) {
	e := New(constants.MonthEndClamp)
	h := habit(t, constants.FrequencyWeekly, "2025-01-01")
	h.ReminderEnabled = true
	h.ReminderTime = "08:30"

	// Due day, reminder still ahead
	now := time.Date(2025, 1, 8, 7, 0, 0, 0, time.UTC)
	got, ok := e.NextReminder(h, now, time.UTC)
	want := time.Date(2025, 1, 8, 8, 30, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("NextReminder() = %v, %v; want %v", got, ok, want)
	}

	// Due day, reminder already passed: roll to next due day
	now = time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	got, ok = e.NextReminder(h, now, time.UTC)
	want = time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("NextReminder() after time = %v, %v; want %v", got, ok, want)
	}

	// Non-due day
	now = time.Date(2025, 1, 10, 7, 0, 0, 0, time.UTC)
	got, ok = e.NextReminder(h, now, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("NextReminder() from non-due day = %v, %v; want %v", got, ok, want)
	}
}

func TestNextReminder_Disabled(t *testing.T) {
	e := New(constants.MonthEndClamp)
	h := habit(t, constants.FrequencyDaily, "2025-01-01")
	now := time.Date(2025, 1, 8, 7, 0, 0, 0, time.UTC)

	if _, ok := e.NextReminder(h, now, time.UTC); ok {
		t.Error("disabled reminder should not schedule")
	}

	h.ReminderEnabled = true
	h.ReminderTime = "late"
	if _, ok := e.NextReminder(h, now, time.UTC); ok {
		t.Error("malformed reminder time should not schedule")
	}
}
