package embedded

import (
	"embed"
	"strings"
	"testing"
)

// 真正的资源嵌入在 assets/embed.go 中，
// 这里用空的 embed.FS 测试路由和初始化逻辑。

func initEmpty(t *testing.T) {
	t.Helper()
	var emptyFS embed.FS
	Init(emptyFS)
	t.Cleanup(func() { initialized = false })
}

func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	initEmpty(t)

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("assets/audio/fire.wav"); err == nil {
		t.Error("Expected error when calling Open() before Init()")
	}
	if _, err := ReadFile("assets/config/game.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if _, err := Glob("assets/audio/*.wav"); err == nil {
		t.Error("Expected error when calling Glob() before Init()")
	}
	if Exists("assets/audio/fire.wav") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestInvalidPrefix(t *testing.T) {
	initEmpty(t)

	for _, path := range []string{"invalid/path.wav", "sounds/fire.wav", "game.yaml"} {
		if _, err := Open(path); err == nil {
			t.Errorf("Open(%q): expected error for invalid prefix", path)
		} else if !strings.Contains(err.Error(), "unknown resource path prefix") {
			t.Errorf("Open(%q): unexpected error: %v", path, err)
		}
	}

	if _, err := ReadFile("invalid/game.yaml"); err == nil {
		t.Error("ReadFile: expected error for invalid prefix")
	}
	if _, err := Glob("invalid/*.wav"); err == nil {
		t.Error("Glob: expected error for invalid prefix")
	}
}

func TestPathNormalization(t *testing.T) {
	initEmpty(t)

	// "./" 前缀应被移除后再路由；空 FS 中文件不存在，
	// 但错误必须是 not-found 而非前缀错误
	_, err := Open("./assets/audio/fire.wav")
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if strings.Contains(err.Error(), "unknown resource path prefix") {
		t.Errorf("Path normalization should strip './' before routing, got: %v", err)
	}
}

func TestExistsMissingFile(t *testing.T) {
	initEmpty(t)

	if Exists("assets/audio/no_such_file.wav") {
		t.Error("Expected Exists() to return false for missing file")
	}
}
