package ecs

import (
	"reflect"
	"testing"
)

// ========== 测试组件定义 ==========

type benchmarkComp1 struct {
	Value1 int
	Value2 float64
}

type benchmarkComp2 struct {
	Name string
	Data []byte
}

type benchmarkComp3 struct {
	X, Y  float64
	Angle float64
}

// ========== 辅助函数：创建测试数据 ==========

// setupBenchmarkEntities 创建指定数量的实体，每个实体包含指定组件
func setupBenchmarkEntities(count int, compsPerEntity int) *EntityManager {
	em := NewEntityManagerWithCapacity(count + 16)

	for i := 0; i < count; i++ {
		entity := em.CreateEntity()

		if compsPerEntity >= 1 {
			em.AddComponent(entity, &benchmarkComp1{Value1: i, Value2: float64(i) * 1.5})
		}
		if compsPerEntity >= 2 {
			em.AddComponent(entity, &benchmarkComp2{Name: "Entity", Data: make([]byte, 10)})
		}
		if compsPerEntity >= 3 {
			em.AddComponent(entity, &benchmarkComp3{X: float64(i), Y: float64(i * 2), Angle: 0.0})
		}
	}
	em.Commit()

	return em
}

// ========== 查询路径基准 ==========

func BenchmarkGetEntitiesWithReflect(b *testing.B) {
	em := setupBenchmarkEntities(1000, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = em.GetEntitiesWith(
			reflect.TypeOf(&benchmarkComp1{}),
			reflect.TypeOf(&benchmarkComp3{}),
		)
	}
}

func BenchmarkGetEntitiesWithGeneric(b *testing.B) {
	em := setupBenchmarkEntities(1000, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchmarkComp1, *benchmarkComp3](em)
	}
}

func BenchmarkGetComponentGeneric(b *testing.B) {
	em := setupBenchmarkEntities(1000, 3)
	ids := GetEntitiesWith1[*benchmarkComp1](em)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetComponent[*benchmarkComp1](em, ids[i%len(ids)])
	}
}

func BenchmarkCreateCommitDestroy(b *testing.B) {
	em := NewEntityManagerWithCapacity(b.N + 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &benchmarkComp1{Value1: i})
		em.Commit()
		em.DestroyEntity(id)
		em.Commit()
	}
}
