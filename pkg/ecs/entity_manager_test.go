package ecs

import (
	"reflect"
	"testing"
	"testing/quick"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件（实体尚未提交，创建者仍需能读到组件）
	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestStagedEntityInvisibleToQueries(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 未提交的实体不应出现在查询结果中
	entities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(entities) != 0 {
		t.Errorf("Staged entity should be invisible to queries, got %d entities", len(entities))
	}

	// 提交后应出现
	em.Commit()
	entities = em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(entities) != 1 || entities[0] != id {
		t.Errorf("Committed entity should be queryable, got %v", entities)
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.Commit()

	// 标记销毁
	em.DestroyEntity(id)

	// 提交前实体仍然存在（本 tick 内快照稳定）
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before Commit")
	}
	if !em.IsDestroyed(id) {
		t.Error("IsDestroyed should report the pending mark")
	}

	// 提交后实体消失
	em.Commit()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after Commit")
	}
}

func TestDestroyEntityIdempotent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.Commit()

	// 重复销毁同一实体必须是无害的空操作
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.Commit()

	if em.Alive(id) {
		t.Error("Entity should be gone after Commit")
	}

	// 销毁不存在的实体同样无害
	em.DestroyEntity(id)
	em.Commit()
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount should be 0, got %d", em.EntityCount())
	}
}

func TestCreateAndDestroySameTick(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.DestroyEntity(id)
	em.Commit()

	// 同一 tick 内创建又销毁的实体提交后不应残留
	if em.Alive(id) {
		t.Error("Entity created and destroyed in the same tick should not survive Commit")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount should be 0, got %d", em.EntityCount())
	}
}

func TestEntityIDNeverReused(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.Commit()
	em.DestroyEntity(id1)
	em.Commit()

	id2 := em.CreateEntity()
	if id2 == id1 {
		t.Error("Entity IDs must never be reused")
	}
}

func TestCapacityLimit(t *testing.T) {
	em := NewEntityManagerWithCapacity(3)

	for i := 0; i < 3; i++ {
		if id := em.CreateEntity(); id == InvalidEntity {
			t.Fatalf("Entity %d should be created within capacity", i)
		}
	}

	// 超出容量的请求被丢弃，返回 InvalidEntity，不会 panic
	if id := em.CreateEntity(); id != InvalidEntity {
		t.Errorf("Creation beyond capacity should return InvalidEntity, got %d", id)
	}

	// 销毁一个实体并提交后，容量重新可用
	em.Commit()
	entities := em.GetEntitiesWith()
	em.DestroyEntity(entities[0])
	em.Commit()

	if id := em.CreateEntity(); id == InvalidEntity {
		t.Error("Creation should succeed again after capacity is freed")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	em.Commit()

	// 查询拥有 Position+Velocity 的实体
	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)

	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}

	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}
}

func TestGetEntitiesWithSortedByID(t *testing.T) {
	em := NewEntityManager()

	const n = 50
	for i := 0; i < n; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
	}
	em.Commit()

	// 查询结果必须按 EntityID 升序，保证系统遍历与 map 迭代顺序无关
	entities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(entities) != n {
		t.Fatalf("Expected %d entities, got %d", n, len(entities))
	}
	for i := 1; i < len(entities); i++ {
		if entities[i-1] >= entities[i] {
			t.Fatalf("Query result not sorted at index %d: %d >= %d", i, entities[i-1], entities[i])
		}
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 7, Y: 9})
	em.Commit()

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if pos.X != 7 || pos.Y != 9 {
		t.Errorf("Component data mismatch, got (%f, %f)", pos.X, pos.Y)
	}

	// 缺失组件返回零值与 false
	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if ok || vel != nil {
		t.Error("Generic GetComponent should report missing component")
	}
}

func TestGenericQueries(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	em.Commit()

	with1 := GetEntitiesWith1[*testPositionComponent](em)
	if len(with1) != 2 {
		t.Errorf("GetEntitiesWith1 expected 2 entities, got %d", len(with1))
	}

	with2 := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(with2) != 1 || with2[0] != id1 {
		t.Errorf("GetEntitiesWith2 expected only id1, got %v", with2)
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.AddComponent(id, &testVelocityComponent{})
	em.Commit()

	em.RemoveComponent(id, reflect.TypeOf(&testVelocityComponent{}))

	if em.HasComponent(id, reflect.TypeOf(&testVelocityComponent{})) {
		t.Error("Velocity component should be removed")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Position component should remain")
	}
}

func TestCountAliveIncludesStaged(t *testing.T) {
	em := NewEntityManager()

	// 已提交实体
	committed := em.CreateEntity()
	em.AddComponent(committed, &testPositionComponent{})
	em.Commit()

	// 本 tick 暂存的新实体：查询不可见，但清点计入
	staged := em.CreateEntity()
	em.AddComponent(staged, &testPositionComponent{})

	if got := len(GetEntitiesWith1[*testPositionComponent](em)); got != 1 {
		t.Errorf("Queries should see only committed entities, got %d", got)
	}
	if got := CountAlive1[*testPositionComponent](em); got != 2 {
		t.Errorf("CountAlive should include staged entities, got %d want 2", got)
	}

	// 标记销毁的实体立即从清点中剔除
	em.DestroyEntity(committed)
	if got := CountAlive1[*testPositionComponent](em); got != 1 {
		t.Errorf("CountAlive should exclude marked entities, got %d want 1", got)
	}
	em.DestroyEntity(staged)
	if got := CountAlive1[*testPositionComponent](em); got != 0 {
		t.Errorf("CountAlive should exclude marked staged entities, got %d want 0", got)
	}

	em.Commit()
	if got := CountAlive1[*testPositionComponent](em); got != 0 {
		t.Errorf("Nothing should survive the commit, got %d", got)
	}
}

func TestEntityLifecycleProperty(t *testing.T) {
	// 性质测试：任意一串创建/销毁/提交操作之后，
	// 查询结果必须与独立账本一致，且 ID 严格递增、结果有序。
	prop := func(ops []uint8) bool {
		em := NewEntityManager()
		var ledger []EntityID
		var lastID EntityID

		for _, op := range ops {
			switch {
			case op%3 != 0 || len(ledger) == 0:
				id := em.CreateEntity()
				em.AddComponent(id, &testPositionComponent{})
				if id <= lastID {
					return false // ID 必须单调递增
				}
				lastID = id
				ledger = append(ledger, id)
			default:
				idx := int(op) % len(ledger)
				em.DestroyEntity(ledger[idx])
				ledger = append(ledger[:idx], ledger[idx+1:]...)
			}
			if op%7 == 0 {
				em.Commit()
			}
		}
		em.Commit()

		got := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
		if len(got) != len(ledger) {
			return false
		}
		want := make(map[EntityID]bool, len(ledger))
		for _, id := range ledger {
			want[id] = true
		}
		for i, id := range got {
			if !want[id] {
				return false
			}
			if i > 0 && got[i-1] >= id {
				return false // 查询结果必须升序
			}
		}
		return true
	}

	if err := quick.Check(prop, nil); err != nil {
		t.Errorf("Lifecycle property violated: %v", err)
	}
}
