package lambert

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Tolerance != 1e-6 {
		t.Fatalf("tolerance=%g", s.Tolerance)
	}
	if s.MaxIterations != 1000 {
		t.Fatalf("max iterations=%d", s.MaxIterations)
	}
	if s.Logger == nil {
		t.Fatal("logger must never be nil after fill")
	}
}

func TestSettingsFill(t *testing.T) {
	s := (&Settings{Tolerance: 1e-9}).fill()
	if s.Tolerance != 1e-9 {
		t.Fatalf("tolerance=%g", s.Tolerance)
	}
	if s.MaxIterations != 1000 {
		t.Fatalf("max iterations not defaulted, got %d", s.MaxIterations)
	}
	if s.Logger == nil {
		t.Fatal("logger not defaulted")
	}
	var nilSettings *Settings
	if nilSettings.fill() == nil {
		t.Fatal("nil settings must fill to defaults")
	}
}
