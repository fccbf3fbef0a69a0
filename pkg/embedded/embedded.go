// Package embedded 提供嵌入资源的统一访问接口
//
// embed.FS 变量声明在 assets/embed.go（以 assets/ 目录为根），
// 由本包包装后供配置加载与资源管理器使用，
// 对外路径统一带 "assets/" 前缀。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	assetsFS    embed.FS
	initialized bool
)

// Init 初始化 embed.FS 变量
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets embed.FS) {
	assetsFS = assets
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 校验并规范化资源路径
// 对外路径必须以 "assets/" 开头；嵌入 FS 以 assets/ 目录为根，
// 校验后剥离前缀再访问
func normalize(path string) (string, error) {
	if !initialized {
		return "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// embed.FS 只接受正斜杠路径
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "assets/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/')", path)
	}
	return strings.TrimPrefix(path, "assets/"), nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return assetsFS.Open(p)
}

// ReadFile 读取嵌入文件的全部内容
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(assetsFS, p)
}

// Exists 检查文件是否存在于 embed.FS 中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在 embed.FS 中匹配文件
// 模式必须以 "assets/" 开头，返回的路径同样带 "assets/" 前缀，
// 可直接传回 Open/ReadFile
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(assetsFS, p)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = "assets/" + m
	}
	return matches, nil
}
