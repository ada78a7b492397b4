package systems

import (
	"github.com/google/uuid"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

// BatchExpirySystem 删除截止时间已到的点击批次
//
// 按批次 ID 过滤删除，只影响该批次自己的实体：环境实体和其他批次不受影响，
// 即使同一时刻有多个批次在场。
type BatchExpirySystem struct {
	state *game.FieldState
}

// NewBatchExpirySystem 创建批次过期系统
func NewBatchExpirySystem(state *game.FieldState) *BatchExpirySystem {
	return &BatchExpirySystem{state: state}
}

// Update 检查动画时钟，标记所有过期批次的实体
func (s *BatchExpirySystem) Update(_ float64) {
	now := s.state.Timing.Elapsed
	em := s.state.Entities

	var expired map[uuid.UUID]int
	for _, id := range ecs.GetEntitiesWith1[*components.BatchComponent](em) {
		batch, _ := ecs.GetComponent[*components.BatchComponent](em, id)
		if now < batch.Deadline {
			continue
		}
		em.DestroyEntity(id)
		if expired == nil {
			expired = make(map[uuid.UUID]int)
		}
		expired[batch.ID]++
	}

	if len(expired) == 0 {
		return
	}
	log := logging.Named("BatchExpiry")
	for id, n := range expired {
		log.Debugf("Batch %s expired, removing %d entities", id, n)
	}
}

// RemoveBatch 立即标记某个批次的全部实体待删除
//
// 返回：
//   - int: 被标记的实体数量
func RemoveBatch(em *ecs.EntityManager, batch uuid.UUID) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BatchComponent](em) {
		b, _ := ecs.GetComponent[*components.BatchComponent](em, id)
		if b.ID == batch {
			em.DestroyEntity(id)
			n++
		}
	}
	return n
}
