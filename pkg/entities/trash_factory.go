package entities

import (
	"fmt"

	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
)

// 第一件垃圾的初始位置，之后每次重新生成都随机选择横坐标
const (
	InitialTrashX = 500.0
	InitialTrashY = 50.0
)

// NewTrashEntity 创建下落中的垃圾实体
// 参数:
//   - em: EntityManager 实例
//   - rm: ResourceManager 实例，用于预先切分精灵图（可为 nil，首次绘制时再加载）
//   - sheet: 垃圾精灵图（3x3 个图块，每行对应一个垃圾桶）
//
// 返回: 创建的实体ID；精灵图无法切分时返回错误
func NewTrashEntity(em *ecs.EntityManager, rm *game.ResourceManager, sheet *components.SpriteSheet) (ecs.EntityID, error) {
	if rm != nil {
		if _, err := rm.LoadTiles(sheet); err != nil {
			return 0, fmt.Errorf("failed to load trash sprite: %w", err)
		}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: InitialTrashX, Y: InitialTrashY})
	ecs.AddComponent(em, id, &components.SpriteComponent{Sheet: sheet, Index: 0})
	ecs.AddComponent(em, id, &components.FallingComponent{Falling: true})
	return id, nil
}
