// Package ecs 提供实体-组件存储
//
// 所有模拟系统共享同一个 EntityManager。一个 tick 内产生的实体创建与销毁
// 请求会被缓冲，直到场景在 tick 末尾调用 Commit() 统一提交。这样每个系统
// 在本 tick 内看到的实体快照是稳定的，遍历过程中不会出现实体凭空消失或
// 新实体插队的情况。
package ecs

import (
	"log"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// ID 单调递增且永不复用，0 保留为无效 ID
type EntityID uint64

// InvalidEntity 表示无效实体（创建失败时返回）
const InvalidEntity EntityID = 0

// DefaultCapacity 默认实体容量上限
// 超过上限的创建请求会被丢弃并记录日志，模拟继续运行
const DefaultCapacity = 2048

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID   uint64
	capacity int

	// 已提交的实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}

	// 本 tick 内新建、尚未提交的实体
	// 新实体对 GetComponent/HasComponent 可见（创建者需要继续装配组件），
	// 但不会出现在 GetEntitiesWith 查询结果中，直到 Commit()
	staged map[EntityID]map[reflect.Type]interface{}

	// 待销毁的实体集合（集合语义保证重复销毁是无害的空操作）
	toDestroy map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return NewEntityManagerWithCapacity(DefaultCapacity)
}

// NewEntityManagerWithCapacity 创建指定容量上限的 EntityManager
// capacity <= 0 时使用 DefaultCapacity
func NewEntityManagerWithCapacity(capacity int) *EntityManager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EntityManager{
		nextID:     1, // ID从1开始,0保留为无效ID
		capacity:   capacity,
		components: make(map[EntityID]map[reflect.Type]interface{}),
		staged:     make(map[EntityID]map[reflect.Type]interface{}),
		toDestroy:  make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
// 新实体在 Commit() 之前不会出现在查询结果中
// 达到容量上限时丢弃请求，返回 InvalidEntity 并记录日志
func (em *EntityManager) CreateEntity() EntityID {
	if len(em.components)+len(em.staged) >= em.capacity {
		log.Printf("[EntityManager] 实体容量已满 (%d)，丢弃创建请求", em.capacity)
		return InvalidEntity
	}
	id := EntityID(em.nextID)
	em.nextID++
	em.staged[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待销毁（不立即删除）
// 重复标记同一实体是空操作
func (em *EntityManager) DestroyEntity(id EntityID) {
	if id == InvalidEntity {
		return
	}
	em.toDestroy[id] = struct{}{}
}

// IsDestroyed 返回实体是否已被标记待销毁
// 碰撞裁决系统用它保证一个实体在同一 tick 内只产生一次销毁结果
func (em *EntityManager) IsDestroyed(id EntityID) bool {
	_, marked := em.toDestroy[id]
	return marked
}

// Alive 返回实体当前是否存活（已提交或已暂存，且未标记销毁）
func (em *EntityManager) Alive(id EntityID) bool {
	if _, marked := em.toDestroy[id]; marked {
		return false
	}
	if _, ok := em.components[id]; ok {
		return true
	}
	_, ok := em.staged[id]
	return ok
}

// AddComponent 为实体添加组件
// 组件按指针类型存储，同类型重复添加会覆盖旧组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.staged[id]; exists {
		compMap[componentType] = component
		return
	}
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.staged[id]; exists {
		delete(compMap, componentType)
		return
	}
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
		return nil, false
	}
	if compMap, exists := em.staged[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// Commit 提交本 tick 内缓冲的创建与销毁
// 必须由场景在每个 tick 的最后调用，其他任何时机都不允许调用
func (em *EntityManager) Commit() {
	for id, compMap := range em.staged {
		em.components[id] = compMap
		delete(em.staged, id)
	}
	for id := range em.toDestroy {
		delete(em.components, id)
		delete(em.toDestroy, id)
	}
}

// EntityCount 返回已提交的存活实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 结果按 EntityID 升序排列，保证系统遍历顺序与 map 迭代顺序无关
//
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// CountAlive 清点拥有指定组件组合且未标记销毁的实体
// 与 GetEntitiesWith 不同，本 tick 暂存的新实体也计入——波次导演在
// 提交前清点存量时，分裂出的子陨石必须算作活着
func (em *EntityManager) CountAlive(componentTypes ...reflect.Type) int {
	count := 0
	for _, pool := range []map[EntityID]map[reflect.Type]interface{}{em.components, em.staged} {
		for id, compMap := range pool {
			if _, marked := em.toDestroy[id]; marked {
				continue
			}
			hasAll := true
			for _, ct := range componentTypes {
				if _, found := compMap[ct]; !found {
					hasAll = false
					break
				}
			}
			if hasAll {
				count++
			}
		}
	}
	return count
}

// typeOf 返回泛型参数 T 的 reflect.Type
// T 应为组件指针类型，如 *components.TransformComponent
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 泛型版组件获取，省去调用方的类型断言
//
// 用法:
//
//	tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// MustComponent 泛型版组件获取，组件缺失时返回零值
// 仅用于"组件必然存在"的查询结果遍历，调用方需自行保证前置条件
func MustComponent[T any](em *EntityManager, id EntityID) T {
	comp, _ := GetComponent[T](em, id)
	return comp
}

// GetEntitiesWith1 查询拥有 1 个指定组件类型的实体（泛型版）
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T]())
}

// CountAlive1 清点拥有 1 个指定组件类型的存活实体（泛型版，含暂存）
func CountAlive1[T any](em *EntityManager) int {
	return em.CountAlive(typeOf[T]())
}

// GetEntitiesWith2 查询同时拥有 2 个指定组件类型的实体（泛型版）
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 3 个指定组件类型的实体（泛型版）
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
