package playback

import "testing"

func TestNewMonoDefaults(t *testing.T) {
	s := New([]float32{0.1, 0.2, 0.3}, 1)
	if s.FrameCount != 3 {
		t.Fatalf("FrameCount = %d, want 3", s.FrameCount)
	}
	if s.Level() != 1.0 {
		t.Fatalf("default level = %v, want 1.0", s.Level())
	}
	if s.Position() != 0 {
		t.Fatalf("default position = %d, want 0", s.Position())
	}
}

func TestFrameMonoDuplicatesChannel(t *testing.T) {
	s := New([]float32{0.5, -0.5}, 1)
	l, r := s.Frame()
	if l != 0.5 || r != 0.5 {
		t.Fatalf("Frame() = (%v,%v), want (0.5,0.5)", l, r)
	}
}

func TestFrameStereoSplitsChannels(t *testing.T) {
	s := New([]float32{0.1, 0.2, 0.3, 0.4}, 2)
	l, r := s.Frame()
	if l != 0.1 || r != 0.2 {
		t.Fatalf("Frame() = (%v,%v), want (0.1,0.2)", l, r)
	}
	s.Advance()
	l, r = s.Frame()
	if l != 0.3 || r != 0.4 {
		t.Fatalf("Frame() after advance = (%v,%v), want (0.3,0.4)", l, r)
	}
}

func TestAdvanceWrapsModuloFrameCount(t *testing.T) {
	s := New([]float32{1, 2, 3}, 1)
	for i := 0; i < 5; i++ {
		s.Advance()
	}
	if s.Position() != 2 {
		t.Fatalf("position = %d, want 2 (5 mod 3)", s.Position())
	}
}

func TestResetReturnsPositionToZero(t *testing.T) {
	s := New([]float32{1, 2, 3}, 1)
	s.Advance()
	s.Advance()
	s.Reset()
	if s.Position() != 0 {
		t.Fatalf("position after reset = %d, want 0", s.Position())
	}
}

func TestSetLevelAndPanClamp(t *testing.T) {
	s := New([]float32{1}, 1)
	s.SetLevel(3.0)
	if s.Level() != 1.0 {
		t.Fatalf("level = %v, want clamped 1.0", s.Level())
	}
	s.SetPan(-9.0)
	if s.Pan() != -1.0 {
		t.Fatalf("pan = %v, want clamped -1.0", s.Pan())
	}
}
