//go:build js

package main

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/asteroids/internal/score"
)

// openScoreStore 打开浏览器端的 localStorage 排行榜
// 存储不可用时进入降级模式，成绩只保留在内存里
func openScoreStore() score.Store {
	manager, err := gdata.Open(gdata.Config{AppName: "asteroids"})
	if err != nil {
		log.Printf("localStorage 不可用, 排行榜只在内存生效: %v", err)
		manager = nil
	}
	return score.NewGdataStore(manager)
}
