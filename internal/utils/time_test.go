package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestTodayInTimezone(t *testing.T) {
	today, err := TodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("TodayInTimezone() error = %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Location() != time.UTC {
		t.Errorf("TodayInTimezone() = %v, want UTC midnight", today)
	}

	if _, err := TodayInTimezone("Invalid/Timezone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestResolveDate(t *testing.T) {
	d, err := ResolveDate("2025-04-21", "UTC")
	if err != nil {
		t.Fatalf("ResolveDate() error = %v", err)
	}
	if FormatDate(d) != "2025-04-21" {
		t.Errorf("ResolveDate() = %s", FormatDate(d))
	}

	if _, err := ResolveDate("21-04-2025", "UTC"); err == nil {
		t.Error("expected error for malformed date")
	}

	if _, err := ResolveDate("", "UTC"); err != nil {
		t.Errorf("ResolveDate(\"\") error = %v", err)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	date := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	got, err := CombineDateAndTime(date, "07:30", time.UTC)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2025, 1, 8, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime(date, "7.30", time.UTC); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := map[string]bool{
		"00:00": true,
		"23:59": true,
		"24:00": false,
		"9:5":   false,
		"":      false,
	}
	for in, want := range tests {
		if got := ValidateTimeFormat(in); got != want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") || !ValidateTimezone("UTC") {
		t.Error("expected empty, Local and UTC to be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("expected invalid timezone to be rejected")
	}
}
