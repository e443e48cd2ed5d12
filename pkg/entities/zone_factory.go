package entities

import (
	"fmt"

	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
)

// NewZoneSetEntity 创建三个垃圾桶组成的实体，贴窗口底部从左到右排列
//
// closed 是每个垃圾桶关闭状态的图块下标，打开状态为 closed[i]+1。
// 精灵图总是按 sheet 当前的图块尺寸重新切分，不沿用上一局缩放后的缓存。
func NewZoneSetEntity(em *ecs.EntityManager, rm *game.ResourceManager, sheet *components.SpriteSheet, closed []int, windowW, windowH float64) (ecs.EntityID, error) {
	if rm != nil {
		if _, err := rm.ReloadTiles(sheet); err != nil {
			return 0, fmt.Errorf("failed to load bin sprite: %w", err)
		}
	}

	tileW, tileH := sheet.TileSize()
	zones := components.NewZoneSet(closed, ZonePositions(windowW, windowH, tileW, tileH),
		components.Point{X: tileW, Y: tileH})
	if err := zones.Validate(); err != nil {
		return 0, err
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.SpriteComponent{Sheet: sheet})
	ecs.AddComponent(em, id, zones)
	return id, nil
}

// ZonePositions 返回垃圾桶左上角坐标列表
func ZonePositions(windowW, windowH, tileW, tileH float64) []components.Point {
	layout := config.ZoneLayout(windowW, windowH, tileW, tileH)
	positions := make([]components.Point, len(layout))
	for i, p := range layout {
		positions[i] = components.Point{X: p[0], Y: p[1]}
	}
	return positions
}
