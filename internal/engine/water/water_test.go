package water

import "testing"

func TestFrame(t *testing.T) {
	a := NewAnimation(7, 10)
	tests := []struct {
		ticks int
		want  int
	}{
		{0, 0},
		{-50, 0},
		{199, 0},
		{200, 1},
		{1000, 5},
		{1400, 0},
		{1600, 1},
	}
	for _, tt := range tests {
		if got := a.Frame(tt.ticks); got != tt.want {
			t.Errorf("Frame(%d) = %d, want %d", tt.ticks, got, tt.want)
		}
	}
}

func TestNewAnimationDefaults(t *testing.T) {
	a := NewAnimation(7, 0)
	if a.Speed != DefaultSpeed {
		t.Errorf("Speed = %v, want %v", a.Speed, DefaultSpeed)
	}
	if got := NewAnimation(0, 10).Frame(5000); got != 0 {
		t.Errorf("Frame with no frames = %d, want 0", got)
	}
}
