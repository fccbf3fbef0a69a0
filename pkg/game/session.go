package game

import (
	"log"
	"math/rand"

	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// MaxLives 生命数上限（道具奖励不会超过此值）
const MaxLives = 9

// Session 持有一局游戏的全局状态
//
// 包括阶段状态机、得分、剩余生命、当前波次、事件总线和本局的随机源。
// 阶段切换请求先入队，由场景在 tick 边界调用 ProcessTransitions() 统一
// 处理，模拟过程中阶段保持稳定。非法的切换请求是无害的空操作。
//
// 随机源由种子构造：相同种子的两局游戏在相同输入下产生相同的模拟结果。
type Session struct {
	phase   types.Phase
	pending []types.Phase

	score int
	lives int
	wave  int

	rng *rand.Rand
	bus *ecs.EventBus
}

// legalTransitions 阶段状态机的合法切换表
var legalTransitions = map[types.Phase][]types.Phase{
	types.PhaseMenu:     {types.PhasePlaying},
	types.PhasePlaying:  {types.PhasePaused, types.PhaseGameOver},
	types.PhasePaused:   {types.PhasePlaying},
	types.PhaseGameOver: {types.PhaseMenu},
}

// NewSession 创建一局新游戏
// 初始阶段为 Menu；lives 为初始生命数，seed 决定本局所有随机行为
func NewSession(lives int, seed int64, bus *ecs.EventBus) *Session {
	if bus == nil {
		bus = ecs.NewEventBus()
	}
	return &Session{
		phase: types.PhaseMenu,
		lives: lives,
		rng:   rand.New(rand.NewSource(seed)),
		bus:   bus,
	}
}

// Phase 返回当前阶段
func (s *Session) Phase() types.Phase {
	return s.phase
}

// RequestTransition 请求切换到目标阶段
// 请求只入队，不立即生效；合法性在 ProcessTransitions 时检查
func (s *Session) RequestTransition(to types.Phase) {
	s.pending = append(s.pending, to)
}

// HasPendingTransition 返回是否有未处理的切换请求指向目标阶段
// 场景用它在 tick 中途检测 GameOver 请求并跳过剩余模拟系统
func (s *Session) HasPendingTransition(to types.Phase) bool {
	for _, p := range s.pending {
		if p == to {
			return true
		}
	}
	return false
}

// ProcessTransitions 在 tick 边界应用排队的切换请求
// 按入队顺序逐个检查合法性：非法请求丢弃并记录日志，不视为错误
// 返回处理后的当前阶段
func (s *Session) ProcessTransitions() types.Phase {
	for _, to := range s.pending {
		if s.canTransition(to) {
			log.Printf("[Session] 阶段切换: %v -> %v", s.phase, to)
			s.phase = to
		} else if to != s.phase {
			log.Printf("[Session] 忽略非法阶段切换请求: %v -> %v", s.phase, to)
		}
	}
	s.pending = s.pending[:0]
	return s.phase
}

// canTransition 检查从当前阶段切换到目标阶段是否合法
func (s *Session) canTransition(to types.Phase) bool {
	for _, legal := range legalTransitions[s.phase] {
		if legal == to {
			return true
		}
	}
	return false
}

// TogglePause 请求暂停或恢复
// Playing 时请求 Paused，Paused 时请求 Playing，其他阶段忽略
func (s *Session) TogglePause() {
	switch s.phase {
	case types.PhasePlaying:
		s.RequestTransition(types.PhasePaused)
	case types.PhasePaused:
		s.RequestTransition(types.PhasePlaying)
	}
}

// Score 返回当前得分
func (s *Session) Score() int {
	return s.score
}

// AddScore 增加得分并广播变化事件
func (s *Session) AddScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	ecs.Publish(s.bus, ScoreChangedEvent{Delta: points, Total: s.score})
}

// Lives 返回剩余生命数
func (s *Session) Lives() int {
	return s.lives
}

// LoseLife 扣除一条生命，返回剩余数量
// 生命数不会降到 0 以下
func (s *Session) LoseLife() int {
	if s.lives > 0 {
		s.lives--
	}
	return s.lives
}

// GainLife 奖励一条生命，带上限检查
func (s *Session) GainLife() {
	if s.lives < MaxLives {
		s.lives++
	}
}

// Wave 返回当前波次编号（第一波为 1，尚未开始时为 0）
func (s *Session) Wave() int {
	return s.wave
}

// SetWave 记录当前波次编号
func (s *Session) SetWave(n int) {
	s.wave = n
}

// RNG 返回本局的随机源
// 所有模拟系统共享同一个源，保证种子可复现
func (s *Session) RNG() *rand.Rand {
	return s.rng
}

// Bus 返回本局的事件总线
func (s *Session) Bus() *ecs.EventBus {
	return s.bus
}
