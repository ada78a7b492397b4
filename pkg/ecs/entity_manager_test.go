package ecs

import (
	"reflect"
	"testing"
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

	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPositionComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除后实体仍然存在，直到 RemoveMarkedEntities
	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	// 重复标记只计一次
	em.DestroyEntity(id)
	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be gone after RemoveMarkedEntities")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEntitiesWith2 = %v, want %v", got, want)
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 50 {
		t.Errorf("Expected 50 entities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("Entities not sorted at %d: %v", i, all)
		}
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testVelocityComponent{VX: 1, VY: -1})

	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if !ok {
		t.Fatal("GetComponent should find the component")
	}
	if vel.VX != 1 || vel.VY != -1 {
		t.Errorf("Unexpected velocity: %+v", vel)
	}

	// 泛型与反射 API 使用同一个类型键
	if !em.HasComponent(id, reflect.TypeOf(&testVelocityComponent{})) {
		t.Error("Reflection API should see component added via generic API")
	}

	RemoveComponent[*testVelocityComponent](em, id)
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("Component should be removed")
	}

	// 不存在的实体
	if _, ok := GetComponent[*testVelocityComponent](em, 999); ok {
		t.Error("GetComponent on unknown entity should fail")
	}
}

func TestDestroyAll(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		em.CreateEntity()
	}
	em.DestroyEntity(1)
	em.DestroyAll()

	if em.Count() != 0 {
		t.Errorf("Count after DestroyAll = %d, want 0", em.Count())
	}
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("Pending destroys should be cleared, removed %d", removed)
	}

	// ID 不回收
	if id := em.CreateEntity(); id != 6 {
		t.Errorf("Next ID after DestroyAll = %d, want 6", id)
	}
}
