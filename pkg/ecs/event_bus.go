package ecs

import "reflect"

// EventBus 是类型安全的同步事件总线
//
// 模拟系统向总线发布游戏事件（开火、击毁、过关等），
// 表现层（音效、界面）订阅感兴趣的事件类型。
// 发布是同步的：处理函数按订阅顺序立即执行。
// 没有订阅者时发布是空操作，模拟可以在无表现层的测试中直接运行。
type EventBus struct {
	handlers map[reflect.Type][]interface{}
}

// NewEventBus 创建一个空的事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[reflect.Type][]interface{}),
	}
}

// Subscribe 注册事件处理函数
// 同一事件类型可以注册多个处理函数，按注册顺序调用
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish 向所有订阅者广播事件
// 处理函数同步执行；发布过程中注册的新处理函数不会收到本次事件
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	hs := bus.handlers[t]
	for _, h := range hs {
		h.(func(T))(event)
	}
}

// Clear 移除所有订阅
// 场景切换时调用，避免旧场景的处理函数继续收到事件
func (bus *EventBus) Clear() {
	bus.handlers = make(map[reflect.Type][]interface{})
}
