package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.LastSection != "hero" {
		t.Errorf("LastSection: got %q, want hero", settings.LastSection)
	}
	if settings.HeroVariant != "hero" {
		t.Errorf("HeroVariant: got %q, want hero", settings.HeroVariant)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if len(settings.Pins) != 0 {
		t.Errorf("Pins: got %v, want empty", settings.Pins)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("in-memory setting lost")
	}
}

// TestSettingsPersistence 测试设置保存后重新加载
func TestSettingsPersistence(t *testing.T) {
	manager := openTestGdata(t, "test_page_settings")

	sm, _ := NewSettingsManager(manager)
	sm.SetLastSection("clients")
	sm.SetFullscreen(true)
	sm.SetHeroVariant("trails")
	sm.SetPin("Sydney", 83.5, 75.2)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, _ := NewSettingsManager(manager)
	got := reloaded.GetSettings()
	if got.LastSection != "clients" || !got.Fullscreen || got.HeroVariant != "trails" {
		t.Errorf("reloaded settings mismatch: %+v", got)
	}
	pin, ok := reloaded.Pin("Sydney")
	if !ok || pin.X != 83.5 || pin.Y != 75.2 {
		t.Errorf("reloaded pin mismatch: %+v (ok=%v)", pin, ok)
	}
	if _, ok := reloaded.Pin("Dubai"); ok {
		t.Error("unexpected pin for Dubai")
	}

	reloaded.ResetPins()
	if _, ok := reloaded.Pin("Sydney"); ok {
		t.Error("ResetPins should clear saved pins")
	}
}

// TestSettingsCorruptData 测试损坏的数据回退到默认设置
func TestSettingsCorruptData(t *testing.T) {
	manager := openTestGdata(t, "test_page_settings_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("lastSection: [unterminated")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager error: %v", err)
	}
	if sm.GetSettings().LastSection != "hero" {
		t.Errorf("expected defaults after corrupt data, got %+v", sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
}
