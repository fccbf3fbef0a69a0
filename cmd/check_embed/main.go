// 校验嵌入资源与配置的一致性：
// resources.yaml 声明的每个资源必须真实存在于 embed.FS 中，
// game.yaml 必须能通过解析与数值校验。发布前跑一遍。
//
//	go run ./cmd/check_embed
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/asteroids/assets"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/game"
)

func main() {
	embedded.Init(assets.FS)

	bad := 0

	if _, err := config.LoadGameConfig("assets/config/game.yaml"); err != nil {
		fmt.Printf("✗ game.yaml: %v\n", err)
		bad++
	} else {
		fmt.Println("✓ game.yaml 解析与校验通过")
	}

	rm := game.NewResourceManager(nil)
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		fmt.Printf("✗ resources.yaml: %v\n", err)
		os.Exit(1)
	}

	manifest := rm.Manifest()
	ids := make([]string, 0, len(manifest))
	for id := range manifest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		path := manifest[id]
		data, err := embedded.ReadFile(path)
		if err != nil {
			fmt.Printf("✗ %s -> %s: %v\n", id, path, err)
			bad++
			continue
		}
		fmt.Printf("✓ %s -> %s (%d bytes)\n", id, path, len(data))
	}

	if bad > 0 {
		fmt.Printf("\n%d 个资源有问题\n", bad)
		os.Exit(1)
	}
	fmt.Printf("\n全部 %d 个资源就绪\n", len(ids))
}
