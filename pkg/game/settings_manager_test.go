package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGData(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MusicVolume != 0.6 || s.SoundVolume != 0.8 {
		t.Errorf("volumes: got %v/%v, want 0.6/0.8", s.MusicVolume, s.SoundVolume)
	}
	if s.Muted || s.Fullscreen {
		t.Error("muted and fullscreen should default to false")
	}
	if s.Initials != DefaultInitials {
		t.Errorf("Initials: got %q, want %q", s.Initials, DefaultInitials)
	}
}

func TestSettingsManager_DegradedMode(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetMusicVolume(1.5)
	sm.SetSoundVolume(-0.2)
	if got := sm.Settings().MusicVolume; got != 1 {
		t.Errorf("MusicVolume: got %v, want 1", got)
	}
	if got := sm.Settings().SoundVolume; got != 0 {
		t.Errorf("SoundVolume: got %v, want 0", got)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save in degraded mode should not fail: %v", err)
	}
}

func TestSettingsManager_Initials(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "ABC"},
		{"  zx ", "ZX."},
		{"longer", "LON"},
	}
	sm := NewSettingsManager(nil)
	for _, tt := range tests {
		sm.SetInitials(tt.in)
		if got := sm.Settings().Initials; got != tt.want {
			t.Errorf("SetInitials(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSettingsManager_SaveAndLoad(t *testing.T) {
	m := openTestGData(t, "stg_settings_test")

	sm := NewSettingsManager(m)
	sm.SetMusicVolume(0.25)
	sm.SetInitials("kid")
	if !sm.ToggleMute() {
		t.Fatal("ToggleMute should report muted")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewSettingsManager(m)
	got := reloaded.Settings()
	if got.MusicVolume != 0.25 || got.Initials != "KID" || !got.Muted {
		t.Errorf("reloaded settings mismatch: %+v", got)
	}
}
