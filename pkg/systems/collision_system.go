package systems

import (
	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
)

// CollisionSystem 判断下落的垃圾是否落入垃圾桶并计分
//
// 接触判定是近似的：两个图块中心的距离不超过两者半对角线之和即视为接触。
// 垃圾桶按从左到右的固定顺序检查，第一个满足条件的垃圾桶生效；
// 垃圾种类 k 属于 k/3 号垃圾桶。
//
// 垃圾下落时，横向范围覆盖垃圾中心的垃圾桶会打开盖子。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	state         *game.GameState
	audio         *game.AudioManager
	rightSound    string
	wrongSound    string
	logger        *log.Logger
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(em *ecs.EntityManager, gs *game.GameState) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		state:         gs,
		logger:        log.WithPrefix("CollisionSystem"),
	}
}

// SetAudio 设置分拣正确与错误时播放的音效
func (s *CollisionSystem) SetAudio(am *game.AudioManager, rightSound, wrongSound string) {
	s.audio = am
	s.rightSound = rightSound
	s.wrongSound = wrongSound
}

// Update 检测一次碰撞
func (s *CollisionSystem) Update(deltaTime float64) {
	if s.state.Paused {
		return
	}

	trashID, falling, ok := ecs.First[*components.FallingComponent](s.entityManager)
	if !ok {
		return
	}
	pos, hasPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, trashID)
	sprite, hasSprite := ecs.GetComponent[*components.SpriteComponent](s.entityManager, trashID)
	if !hasPos || !hasSprite {
		return
	}

	zoneID, zones, ok := ecs.First[*components.ZoneSetComponent](s.entityManager)
	if !ok {
		return
	}
	zoneSprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, zoneID)
	if !ok {
		return
	}

	if !falling.Falling {
		s.closeAll(zones)
		return
	}

	itemW, itemH := sprite.Sheet.TileSize()
	zoneW, zoneH := zoneSprite.Sheet.TileSize()
	itemCentre := components.Center(pos.Point(), itemW, itemH)

	s.updateLids(zones, zoneW, itemCentre.X)

	if zone, hit := FindZone(itemCentre, itemW, itemH, zones.Positions, zoneW, zoneH); hit {
		if components.ZoneFor(sprite.Index) == zone {
			s.state.AddRight()
			s.audio.PlaySound(s.rightSound)
		} else {
			s.state.AddWrong()
			s.audio.PlaySound(s.wrongSound)
		}
		falling.Falling = false
		s.closeAll(zones)
		s.logger.Debug("trash sorted", "index", sprite.Index, "zone", zone,
			"right", s.state.Right, "wrong", s.state.Wrong)
	}
}

// FindZone 返回第一个与垃圾接触的垃圾桶序号
// 接触条件: distance(垃圾中心, 垃圾桶中心) <= halfDiag(垃圾) + halfDiag(垃圾桶)
func FindZone(itemCentre components.Point, itemW, itemH float64, zones []components.Point, zoneW, zoneH float64) (int, bool) {
	reach := components.HalfDiagonal(itemW, itemH) + components.HalfDiagonal(zoneW, zoneH)
	for i, zp := range zones {
		if components.Distance(itemCentre, components.Center(zp, zoneW, zoneH)) <= reach {
			return i, true
		}
	}
	return 0, false
}

// updateLids 打开横向范围包含 x 的垃圾桶，关闭其余垃圾桶
func (s *CollisionSystem) updateLids(zones *components.ZoneSetComponent, zoneW, x float64) {
	for i, zp := range zones.Positions {
		zones.SetOpen(i, x >= zp.X && x <= zp.X+zoneW)
	}
}

func (s *CollisionSystem) closeAll(zones *components.ZoneSetComponent) {
	for i := range zones.Positions {
		zones.SetOpen(i, false)
	}
}
