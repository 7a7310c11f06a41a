package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1500", 1500, true},
		{" 500 ", 500, true},
		{"0", 0, false},
		{"", 0, false},
		{"-10", 0, false},
		{"12.50", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseAmount(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}

func TestFormatRupees(t *testing.T) {
	if got := FormatRupees(1500); got != "₹1500" {
		t.Fatalf("got %q", got)
	}
	if got := FormatRupees(-500); got != "-₹500" {
		t.Fatalf("got %q", got)
	}
}
