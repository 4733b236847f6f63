package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"unlimited", 0, "unlimited"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestShortKey(t *testing.T) {
	if got := shortKey("02abc"); got != "02abc" {
		t.Errorf("shortKey(short) = %q", got)
	}
	if got := shortKey("0123456789abcdef0123"); got != "01234567…ef0123" {
		t.Errorf("shortKey(long) = %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"weight":           "Weight",
		"temperature_max":  "Temperature Max",
		"SHIPPING  status": "Shipping Status",
		"":                 "",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
