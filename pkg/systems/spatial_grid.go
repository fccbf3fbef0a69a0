package systems

import (
	"github.com/decker502/asteroids/pkg/ecs"
)

// SpatialGrid 碰撞粗筛用的均匀网格
// 战场被划分成 cols×rows 个格子，实体按中心点落格；
// 只有同格或相邻格（含环绕相邻）的实体才会进入窄相检测。
// 格子以一维数组布局（index = row*cols + col），每 tick 重建
type SpatialGrid struct {
	cols, rows   int
	cellW, cellH float64
	cells        [][]ecs.EntityID
}

// NewSpatialGrid 创建覆盖整个战场的网格
// cellSize 为期望格边长；实际边长向战场整除方向取整，
// 保证格数 >= 1 且环绕相邻关系成立
func NewSpatialGrid(arenaW, arenaH, cellSize float64) *SpatialGrid {
	cols := int(arenaW / cellSize)
	if cols < 1 {
		cols = 1
	}
	rows := int(arenaH / cellSize)
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cellW: arenaW / float64(cols),
		cellH: arenaH / float64(rows),
		cells: make([][]ecs.EntityID, cols*rows),
	}
}

// Reset 清空所有格子（保留底层容量，避免每 tick 重新分配）
func (g *SpatialGrid) Reset() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert 把实体按中心点放进对应格子
// 调用方保证坐标已环绕到 [0,W)×[0,H)
func (g *SpatialGrid) Insert(id ecs.EntityID, x, y float64) {
	col := int(x / g.cellW)
	if col >= g.cols {
		col = g.cols - 1
	}
	if col < 0 {
		col = 0
	}
	row := int(y / g.cellH)
	if row >= g.rows {
		row = g.rows - 1
	}
	if row < 0 {
		row = 0
	}
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], id)
}

// Degenerate 返回网格是否退化（格数太少，环绕相邻会重复计数）
// 退化时调用方应改用全量两两检测
func (g *SpatialGrid) Degenerate() bool {
	return g.cols < 3 || g.rows < 3
}

// halfNeighborhood 半邻域偏移：每个无序格对只被访问一次
var halfNeighborhood = [4][2]int{
	{1, 0},  // 右
	{0, 1},  // 下
	{1, 1},  // 右下
	{-1, 1}, // 左下
}

// ForEachCandidatePair 枚举所有候选实体对
// 同格内两两配对，加上与半邻域格（环绕取模）的跨格配对；
// 每个无序实体对最多回调一次
func (g *SpatialGrid) ForEachCandidatePair(fn func(a, b ecs.EntityID)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			if len(cell) == 0 {
				continue
			}

			// 同格配对
			for i := 0; i < len(cell); i++ {
				for j := i + 1; j < len(cell); j++ {
					fn(cell[i], cell[j])
				}
			}

			// 跨格配对（环绕相邻）
			for _, off := range halfNeighborhood {
				ncol := (col + off[0] + g.cols) % g.cols
				nrow := (row + off[1] + g.rows) % g.rows
				neighbor := g.cells[nrow*g.cols+ncol]
				for _, a := range cell {
					for _, b := range neighbor {
						fn(a, b)
					}
				}
			}
		}
	}
}
