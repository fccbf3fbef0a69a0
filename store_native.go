//go:build !js

package main

import (
	"log"

	"github.com/decker502/asteroids/internal/score"
)

// openScoreStore 打开桌面端的 SQLite 排行榜
// 打不开时返回 nil，本局成绩不落盘，游戏照常运行
func openScoreStore() score.Store {
	path, err := score.DefaultDBPath()
	if err != nil {
		log.Printf("用户目录不可用, 排行榜关闭: %v", err)
		return nil
	}

	store, err := score.OpenSQLite(path)
	if err != nil {
		log.Printf("排行榜数据库打开失败, 排行榜关闭: %v", err)
		return nil
	}
	return store
}
