package components

import "github.com/google/uuid"

// BatchComponent 标记由同一次点击生成的实体
//
// 同一批次的实体共享一个截止时间，BatchExpirySystem 按批次 ID 过滤删除，
// 不依赖实体在集合中的位置，连续快速点击不会误删较新的批次。
type BatchComponent struct {
	ID       uuid.UUID
	Deadline float64 // 动画时钟上的截止时间(秒)
}
