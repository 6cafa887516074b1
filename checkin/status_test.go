// go test github.com/homemade/pollday/checkin -v
package checkin

import "testing"

func TestMapRawStatusToEnum(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
	}{
		{raw: "Present", expected: StatusAttended},
		{raw: "Absent", expected: StatusNoShow},
		{raw: "Late", expected: StatusUnknown},
		{raw: "present", expected: StatusUnknown},
		{raw: "", expected: StatusUnknown},
	}
	for _, tt := range tests {
		if result := MapRawStatusToEnum(tt.raw, "Present", "Absent"); result != tt.expected {
			t.Errorf("raw %q: expected %q but have %q", tt.raw, tt.expected, result)
		}
	}
}

func TestMapRawStatusToEnum_UnsetOptions(t *testing.T) {
	// an unset status field never counts as attendance, even when the
	// county has not configured its option strings
	if result := MapRawStatusToEnum("", "", ""); result != StatusUnknown {
		t.Errorf("Expected unknown status but have: %q", result)
	}
}

func TestMapEnumToRawStatus(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{status: StatusAttended, expected: "Present"},
		{status: StatusNoShow, expected: "Absent"},
		// anything other than ATTENDED is written as a no show
		{status: StatusUnknown, expected: "Absent"},
		{status: Status("LATE"), expected: "Absent"},
	}
	for _, tt := range tests {
		if result := MapEnumToRawStatus(tt.status, "Present", "Absent"); result != tt.expected {
			t.Errorf("status %q: expected %q but have %q", tt.status, tt.expected, result)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusAttended, StatusNoShow} {
		raw := MapEnumToRawStatus(status, "Present", "Absent")
		if result := MapRawStatusToEnum(raw, "Present", "Absent"); result != status {
			t.Errorf("Expected %q to round trip but have: %q", status, result)
		}
	}
}
