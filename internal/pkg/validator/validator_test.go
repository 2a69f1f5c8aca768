package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	invalid := []string{"2025-13-01", "2025-02-30", "28-02-2025", "not-a-date", ""}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:3", "extra", ""}
	for _, v := range valid {
		if _, ok := IsValidClockTime(v); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if _, ok := IsValidClockTime(v); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", v)
		}
	}
}

func TestIsValidWeekday(t *testing.T) {
	valid := []string{"Sunday", "Monday", "Friday", "Saturday"}
	invalid := []string{"friday", "FRI", "Funday", ""}
	for _, v := range valid {
		if !IsValidWeekday(v) {
			t.Errorf("IsValidWeekday(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if IsValidWeekday(v) {
			t.Errorf("IsValidWeekday(%q) = true, want false", v)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	if !IsValidEmployeeCode("2024-0001") {
		t.Error("IsValidEmployeeCode(2024-0001) = false, want true")
	}
	invalid := []string{"20240001", "2024-001", "abcd-0001", ""}
	for _, v := range invalid {
		if IsValidEmployeeCode(v) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", v)
		}
	}
}
