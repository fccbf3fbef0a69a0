package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时 HOME 下创建 gdata 管理器
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.MusicVolume != 0.6 {
		t.Errorf("MusicVolume: got %v, want 0.6", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.ShowFPS {
		t.Error("ShowFPS: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if settings.MusicVolume != 0.6 {
		t.Errorf("Degraded mode MusicVolume: got %v, want 0.6", settings.MusicVolume)
	}

	// 降级模式下 Save() 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 的持久化往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdata(t, "test_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetMusicVolume(0.5)
	sm1.SetSoundVolume(0.4)
	sm1.SetMusicEnabled(false)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetShowFPS(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 新管理器实例应加载到保存的值
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.MusicVolume != 0.5 {
		t.Errorf("Loaded MusicVolume: got %v, want 0.5", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.4 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.4", settings.SoundVolume)
	}
	if settings.MusicEnabled {
		t.Error("Loaded MusicEnabled: got true, want false")
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !settings.ShowFPS {
		t.Error("Loaded ShowFPS: got false, want true")
	}
}

// TestVolumeClamp 测试音量设置的范围校验
func TestVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},  // 正常值
		{0.0, 0.0},  // 下限
		{1.0, 1.0},  // 上限
		{-0.5, 0.0}, // 低于下限，应 clamp 到 0.0
		{1.5, 1.0},  // 高于上限，应 clamp 到 1.0
		{-100, 0.0}, // 极小值
		{100, 1.0},  // 极大值
	}

	for _, tt := range tests {
		sm.SetMusicVolume(tt.input)
		if sm.GetSettings().MusicVolume != tt.expected {
			t.Errorf("SetMusicVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().MusicVolume, tt.expected)
		}

		sm.SetSoundVolume(tt.input)
		if sm.GetSettings().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().SoundVolume, tt.expected)
		}
	}
}

// TestSettingsToggles 测试开关类设置
func TestSettingsToggles(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetMusicEnabled(false)
	if sm.GetSettings().MusicEnabled {
		t.Error("After SetMusicEnabled(false): got true, want false")
	}

	sm.SetSoundEnabled(false)
	if sm.GetSettings().SoundEnabled {
		t.Error("After SetSoundEnabled(false): got true, want false")
	}

	sm.SetFullscreen(true)
	if !sm.GetSettings().Fullscreen {
		t.Error("After SetFullscreen(true): got false, want true")
	}

	sm.SetShowFPS(true)
	if !sm.GetSettings().ShowFPS {
		t.Error("After SetShowFPS(true): got false, want true")
	}
}

// TestGetSettingsSameInstance 测试 GetSettings() 返回同一实例
func TestGetSettingsSameInstance(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	settings1 := sm.GetSettings()
	settings2 := sm.GetSettings()

	if settings1 != settings2 {
		t.Error("GetSettings() should return the same instance")
	}
}

// TestLoadNilGdataResets 测试降级模式下 Load() 恢复默认设置
func TestLoadNilGdataResets(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetMusicVolume(0.3)

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().MusicVolume != 0.6 {
		t.Errorf("After Load() in degraded mode, MusicVolume: got %v, want 0.6",
			sm.GetSettings().MusicVolume)
	}
}

// TestClampVolume 测试 clampVolume 辅助函数
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-1.0, 0.0},
		{2.0, 1.0},
		{0.001, 0.001},
		{0.999, 0.999},
	}

	for _, tt := range tests {
		result := clampVolume(tt.input)
		if result != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}
