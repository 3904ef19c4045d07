package validate

import (
	"testing"
	"time"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plainaddress", false},
		{"user@nodomain", false},
		{"user name@example.com", false},
	}
	for _, tc := range cases {
		msg := Email(tc.email)
		if tc.valid && msg != "" {
			t.Errorf("Email(%q) unexpectedly invalid: %s", tc.email, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("Email(%q) unexpectedly valid", tc.email)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"0123456789", true},
		{"+961 70 123 456", true},
		{"123456789012345", true},
		{"123456789", false},
		{"1234567890123456", false},
		{"", false},
	}
	for _, tc := range cases {
		msg := Phone(tc.phone)
		if tc.valid && msg != "" {
			t.Errorf("Phone(%q) unexpectedly invalid: %s", tc.phone, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("Phone(%q) unexpectedly valid", tc.phone)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Abcdef1!", true},
		{"Str0ng&Pass", true},
		{"abcdefgh", false}, // no upper, digit or special
		{"Ab1!", false},     // too short
		{"ABCDEF1!", false}, // no lower
		{"Abcdefg!", false}, // no digit
		{"Abcdefg1", false}, // no special
		{"Abcdef1#", false}, // '#' outside the allowed special set
		{"", false},
	}
	for _, tc := range cases {
		msg := Password(tc.password)
		if tc.valid && msg != "" {
			t.Errorf("Password(%q) unexpectedly invalid: %s", tc.password, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("Password(%q) unexpectedly valid", tc.password)
		}
	}
}

func TestName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"Maya", true},
		{"Jean-Luc", true},
		{"O'Brien", true},
		{"A", false},
		{"", false},
		{"Name123", false},
	}
	for _, tc := range cases {
		msg := Name(tc.name, "First name")
		if tc.valid && msg != "" {
			t.Errorf("Name(%q) unexpectedly invalid: %s", tc.name, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("Name(%q) unexpectedly valid", tc.name)
		}
	}
}

func TestDateOfBirth(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		date  string
		valid bool
	}{
		{"01/15/1990", true},
		{"06/15/2007", true},  // turns 18 today
		{"06/16/2007", false}, // 17 until tomorrow
		{"02/30/1990", false}, // impossible calendar date
		{"01/15/2030", false}, // future
		{"1/15/1990", false},  // wrong format
		{"15/01/1990", false}, // month out of range
		{"", false},
	}
	for _, tc := range cases {
		msg := dateOfBirthAt(tc.date, now)
		if tc.valid && msg != "" {
			t.Errorf("DateOfBirth(%q) unexpectedly invalid: %s", tc.date, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("DateOfBirth(%q) unexpectedly valid", tc.date)
		}
	}
}

func TestPIN(t *testing.T) {
	cases := []struct {
		pin   string
		valid bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}
	for _, tc := range cases {
		msg := PIN(tc.pin)
		if tc.valid && msg != "" {
			t.Errorf("PIN(%q) unexpectedly invalid: %s", tc.pin, msg)
		}
		if !tc.valid && msg == "" {
			t.Errorf("PIN(%q) unexpectedly valid", tc.pin)
		}
	}
}

func TestTextField(t *testing.T) {
	if msg := TextField("Beirut", "Place of birth"); msg != "" {
		t.Fatalf("unexpected message: %s", msg)
	}
	if msg := TextField(" ", "Place of birth"); msg == "" {
		t.Fatal("expected required message for blank value")
	}
	if msg := TextField("x", "Occupation"); msg == "" {
		t.Fatal("expected minimum length message")
	}
}
