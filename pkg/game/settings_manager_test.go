package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时 HOME 下创建 gdata 管理器
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should be a no-op, got %v", err)
	}

	sm.SetFullscreen(true)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
	if sm.GetSettings().Fullscreen {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

func TestSettingsLoadSave(t *testing.T) {
	m := newTestGdata(t, "earthday_settings_test")

	sm := NewSettingsManager(m)
	sm.SetFullscreen(true)
	sm.SetSoundEnabled(false)
	sm.SetSoundVolume(0.25)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	got := reloaded.GetSettings()
	if !got.Fullscreen {
		t.Error("Fullscreen was not persisted")
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled was not persisted")
	}
	if got.SoundVolume != 0.25 {
		t.Errorf("SoundVolume = %v, want 0.25", got.SoundVolume)
	}
}

func TestSettingsLoadCorrupted(t *testing.T) {
	m := newTestGdata(t, "earthday_settings_corrupt")

	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: m, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Error("corrupted settings should fall back to defaults")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"负数", -0.5, 0},
		{"零", 0, 0},
		{"中间值", 0.5, 0.5},
		{"上限", 1, 1},
		{"超过上限", 1.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampVolume(tt.input); got != tt.want {
				t.Errorf("clampVolume(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
