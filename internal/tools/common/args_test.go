package common

import (
	"reflect"
	"testing"
)

func TestGetStringArg(t *testing.T) {
	args := map[string]interface{}{
		"start_date": "2024-01-15",
		"count":      float64(3),
	}

	if got := GetStringArg(args, "start_date", ""); got != "2024-01-15" {
		t.Errorf("GetStringArg = %q, want %q", got, "2024-01-15")
	}
	if got := GetStringArg(args, "missing", "fallback"); got != "fallback" {
		t.Errorf("GetStringArg missing = %q, want fallback", got)
	}
	if got := GetStringArg(args, "count", "fallback"); got != "fallback" {
		t.Errorf("GetStringArg wrong type = %q, want fallback", got)
	}
}

func TestGetBoolArg(t *testing.T) {
	args := map[string]interface{}{
		"all_day_only": true,
	}

	if !GetBoolArg(args, "all_day_only", false) {
		t.Error("GetBoolArg = false, want true")
	}
	if GetBoolArg(args, "missing", false) {
		t.Error("GetBoolArg missing = true, want false")
	}
}

func TestGetIntArg(t *testing.T) {
	args := map[string]interface{}{
		"days_ahead": float64(7),
		"zero":       float64(0),
	}

	if got := GetIntArg(args, "days_ahead", 99); got != 7 {
		t.Errorf("GetIntArg = %d, want 7", got)
	}
	// Explicit zero is distinct from absent
	if got := GetIntArg(args, "zero", 99); got != 0 {
		t.Errorf("GetIntArg explicit zero = %d, want 0", got)
	}
	if got := GetIntArg(args, "missing", 99); got != 99 {
		t.Errorf("GetIntArg missing = %d, want 99", got)
	}
}

func TestGetStringSliceArg(t *testing.T) {
	args := map[string]interface{}{
		"calendar_names": []interface{}{"Work", "Home", float64(3)},
		"not_a_list":     "Work",
	}

	got := GetStringSliceArg(args, "calendar_names")
	if !reflect.DeepEqual(got, []string{"Work", "Home"}) {
		t.Errorf("GetStringSliceArg = %v, want [Work Home]", got)
	}
	if got := GetStringSliceArg(args, "not_a_list"); got != nil {
		t.Errorf("GetStringSliceArg wrong type = %v, want nil", got)
	}
	if got := GetStringSliceArg(args, "missing"); got != nil {
		t.Errorf("GetStringSliceArg missing = %v, want nil", got)
	}
}

func TestGetCalendarNamesFromArgs(t *testing.T) {
	args := map[string]interface{}{
		"calendar_names": []interface{}{"Work"},
	}

	got := GetCalendarNamesFromArgs(args)
	if !reflect.DeepEqual(got, []string{"Work"}) {
		t.Errorf("GetCalendarNamesFromArgs = %v, want [Work]", got)
	}
	if got := GetCalendarNamesFromArgs(map[string]interface{}{}); got != nil {
		t.Errorf("GetCalendarNamesFromArgs empty = %v, want nil", got)
	}
}
