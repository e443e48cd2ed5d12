package entities

import (
	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/ecs"
)

// NewPauseControlEntity 创建窗口右上角的暂停按钮
func NewPauseControlEntity(em *ecs.EntityManager, windowW float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.PauseControlAt(windowW))
	return id
}
