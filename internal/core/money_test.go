package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"5", 500, true},
		{"3.5", 350, true},
		{"3,50", 350, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"1.005", 101, true},
		{"1.004", 100, true},
		{"", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []struct {
		cents int64
		wire  string
	}{
		{500, "5"},
		{350, "3.5"},
		{851, "8.51"},
		{0, "0"},
		{-1150, "-11.5"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(Money{Cents: tc.cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.cents, err)
		}
		if string(b) != tc.wire {
			t.Fatalf("marshal %d = %s, want %s", tc.cents, b, tc.wire)
		}
		var m Money
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("round trip %d -> %d", tc.cents, m.Cents)
		}
	}
}

func TestMoneyUnmarshalWebClientShapes(t *testing.T) {
	var p PricingPolicy
	// Exactly what the web client persists.
	if err := json.Unmarshal([]byte(`{"menu":5,"vianda":3.5,"fixed":120}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Menu.Cents != 500 || p.PackedLunch.Cents != 350 || p.FixedMonthly.Cents != 12000 {
		t.Fatalf("unexpected pricing: %+v", p)
	}
}

func TestFormatARS(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{850, "$8,50"},
		{11150, "$111,50"},
		{0, "$0,00"},
		{-500, "-$5,00"},
	}
	for _, tc := range cases {
		if got := FormatARS(Money{Cents: tc.cents}); got != tc.want {
			t.Fatalf("FormatARS(%d) = %s, want %s", tc.cents, got, tc.want)
		}
	}
}
