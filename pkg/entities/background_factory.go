package entities

import (
	"fmt"

	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
)

// NewBackgroundEntity 创建铺满窗口的背景
// 背景精灵图只有一个图块，尺寸等于窗口尺寸
func NewBackgroundEntity(em *ecs.EntityManager, rm *game.ResourceManager, path string, windowW, windowH int) (ecs.EntityID, error) {
	sheet := components.NewSheet(path, windowW, windowH, 1)
	if rm != nil {
		if _, err := rm.RebuildTiles(sheet, windowW, windowH); err != nil {
			return 0, fmt.Errorf("failed to load background: %w", err)
		}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.SpriteComponent{Sheet: sheet})
	ecs.AddComponent(em, id, &components.BackgroundComponent{})
	return id, nil
}
