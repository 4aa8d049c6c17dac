package tui

import (
	"testing"
	"time"
)

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{1, time.Second},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestTickCmdSendsTickMsg(t *testing.T) {
	cmd := tickCmd(1000)
	if cmd == nil {
		t.Fatal("tickCmd returned nil")
	}
	if _, ok := cmd().(TickMsg); !ok {
		t.Error("tick command should produce a TickMsg")
	}
}
