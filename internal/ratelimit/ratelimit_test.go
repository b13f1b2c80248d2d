package ratelimit

import "testing"

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLoginLimiter(3, 10, true)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("attempt %d denied", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("fourth attempt in the same minute allowed")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	rl := NewLoginLimiter(1, 10, true)

	if !rl.Allow("a") {
		t.Fatal("first attempt for a denied")
	}
	if rl.Allow("a") {
		t.Error("second attempt for a allowed")
	}
	if !rl.Allow("b") {
		t.Error("first attempt for b denied")
	}
}

func TestDisabledAllowsEverything(t *testing.T) {
	rl := NewLoginLimiter(1, 1, false)

	for i := 0; i < 10; i++ {
		if !rl.Allow("x") {
			t.Fatalf("attempt %d denied while disabled", i+1)
		}
	}
}

func TestHourLimit(t *testing.T) {
	rl := NewLoginLimiter(0, 2, true)

	if !rl.Allow("x") || !rl.Allow("x") {
		t.Fatal("attempts within hour limit denied")
	}
	if rl.Allow("x") {
		t.Error("attempt over hour limit allowed")
	}
}

func TestResetClearsWindows(t *testing.T) {
	rl := NewLoginLimiter(1, 1, true)

	rl.Allow("x")
	rl.Reset()
	if !rl.Allow("x") {
		t.Error("attempt denied after reset")
	}
}

func TestGetStats(t *testing.T) {
	rl := NewLoginLimiter(5, 20, true)

	rl.Allow("x")
	rl.Allow("x")

	stats := rl.GetStats("x")
	if !stats.Enabled {
		t.Error("stats report disabled")
	}
	if stats.AttemptsLastMinute != 2 || stats.AttemptsLastHour != 2 {
		t.Errorf("attempts = %d/%d, want 2/2", stats.AttemptsLastMinute, stats.AttemptsLastHour)
	}
}
