// Package assets 通过 go:embed 携带游戏的全部静态资源。
//
// go:embed 指令只能嵌入声明处所在目录及其子目录的文件，
// 因此 FS 变量声明在 assets/ 目录内。音频与配置随二进制分发，
// 桌面端、浏览器端与移动端共用同一份嵌入数据，
// 统一经 pkg/embedded 以 "assets/" 前缀路径访问。
package assets

import "embed"

//go:embed all:audio all:config
var FS embed.FS
