package utils

import "testing"

func TestMakeMap(t *testing.T) {
	m := MakeMap("dataset", "charging_stations")
	if len(m) != 1 || m["dataset"] != "charging_stations" {
		t.Errorf("unexpected map contents: %v", m)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{66.666666, 66.67},
		{0, 0},
		{-1.234, -1.23},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(12.34); got != 12.3 {
		t.Errorf("Round1(12.34) = %f, want 12.3", got)
	}
	if got := Round1(12.36); got != 12.4 {
		t.Errorf("Round1(12.36) = %f, want 12.4", got)
	}
}
