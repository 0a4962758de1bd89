package transport

import "testing"

func TestStartFromIdleGoesArmed(t *testing.T) {
	tr := New()
	if !tr.Start() {
		t.Fatal("expected Start from Idle to succeed")
	}
	if tr.State() != Armed {
		t.Fatalf("state = %v, want Armed", tr.State())
	}
}

func TestStartIgnoredWhenNotIdle(t *testing.T) {
	tr := New()
	tr.Start()
	if tr.Start() {
		t.Fatal("expected second Start (from Armed) to be ignored")
	}
	if tr.State() != Armed {
		t.Fatalf("state = %v, want still Armed", tr.State())
	}
}

func TestFirstClockAfterStartGoesRunning(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Clock()
	if tr.State() != Running {
		t.Fatalf("state = %v, want Running", tr.State())
	}
	if tr.ClockCount() != 1 {
		t.Fatalf("clock count = %d, want 1", tr.ClockCount())
	}
}

func TestSubsequentClocksIncrementCount(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Clock()
	tr.Clock()
	tr.Clock()
	if tr.ClockCount() != 3 {
		t.Fatalf("clock count = %d, want 3", tr.ClockCount())
	}
	if tr.State() != Running {
		t.Fatalf("state = %v, want Running", tr.State())
	}
}

func TestClockWhileIdleIsIgnored(t *testing.T) {
	tr := New()
	tr.Clock()
	if tr.State() != Idle {
		t.Fatalf("state = %v, want Idle", tr.State())
	}
}

func TestStopFromRunningGoesIdle(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Clock()
	tr.Stop()
	if tr.State() != Idle {
		t.Fatalf("state = %v, want Idle", tr.State())
	}
}

func TestStopFromArmedGoesIdle(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Stop()
	if tr.State() != Idle {
		t.Fatalf("state = %v, want Idle", tr.State())
	}
}

func TestStopFromIdleIsNoop(t *testing.T) {
	tr := New()
	tr.Stop()
	if tr.State() != Idle {
		t.Fatalf("state = %v, want Idle", tr.State())
	}
}

func TestFrameCounterResetsOnNewRunningSpan(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Clock()
	tr.IncrementFrameCounter()
	tr.IncrementFrameCounter()
	tr.Stop()
	tr.Start()
	tr.Clock()
	if tr.FrameCounter() != 0 {
		t.Fatalf("frame counter = %d, want reset to 0 on new Running span", tr.FrameCounter())
	}
}

func TestRecordingReflectsRunningOnly(t *testing.T) {
	tr := New()
	if tr.Recording() {
		t.Fatal("expected not recording while Idle")
	}
	tr.Start()
	if tr.Recording() {
		t.Fatal("expected not recording while Armed")
	}
	tr.Clock()
	if !tr.Recording() {
		t.Fatal("expected recording while Running")
	}
}

func TestOnArmRunsOnIdleToArmedTransitionOnly(t *testing.T) {
	tr := New()
	calls := 0
	tr.OnArm(func() { calls++ })

	tr.Start()
	if calls != 1 {
		t.Fatalf("onArm calls after Start from Idle = %d, want 1", calls)
	}

	tr.Start() // already Armed, ignored
	if calls != 1 {
		t.Fatalf("onArm calls after ignored Start = %d, want still 1", calls)
	}

	tr.Clock() // Armed -> Running, not an arm edge
	if calls != 1 {
		t.Fatalf("onArm calls after Clock = %d, want still 1", calls)
	}

	tr.Stop()
	tr.Start()
	if calls != 2 {
		t.Fatalf("onArm calls after second Start from Idle = %d, want 2", calls)
	}
}

func TestStartResetsClockCount(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Clock()
	tr.Clock()
	tr.Stop()
	tr.Start()
	if tr.ClockCount() != 0 {
		t.Fatalf("clock count after re-Start = %d, want 0", tr.ClockCount())
	}
}
