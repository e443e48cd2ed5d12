package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/entities"
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/decker502/earthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// updater 每个 tick 按固定顺序更新的系统
type updater interface {
	Update(deltaTime float64)
}

// GameScene 一局游戏
//
// 场景拥有自己的 EntityManager、GameState 和系统列表，每次进入游戏都重新创建，
// 因此系统状态（如速度倍率）不会在两局之间共享。
// 每个 tick 依次更新输入、碰撞和动画时钟；倒计时结束后把结果交给排行榜场景。
type GameScene struct {
	services      *Services
	state         *game.GameState
	entityManager *ecs.EntityManager

	inputSystem     *systems.UserInputSystem
	collisionSystem *systems.CollisionSystem
	renderSystem    *systems.RenderSystem
	updaters        []updater

	backgroundID ecs.EntityID
	zoneID       ecs.EntityID
	pauseID      ecs.EntityID

	width, height int
	handedOff     bool
	logger        *log.Logger
}

// NewGameScene 为玩家创建一局新游戏，加载所需的精灵图和字体
// 实体先按配置中的初始窗口尺寸布局
func NewGameScene(s *Services, player leaderboard.User) (*GameScene, error) {
	cfg := s.Config
	width, height := s.windowSize()

	scene := &GameScene{
		services:      s,
		state:         game.NewGameState(player, cfg.Round.Seconds),
		entityManager: ecs.NewEntityManager(),
		width:         width,
		height:        height,
		logger:        log.WithPrefix("GameScene"),
	}

	if err := scene.createEntities(); err != nil {
		return nil, err
	}

	renderSystem, err := systems.NewRenderSystem(scene.entityManager, s.Resources, scene.state, cfg.Assets.Font)
	if err != nil {
		return nil, err
	}
	scene.renderSystem = renderSystem

	scene.inputSystem = systems.NewUserInputSystem(scene.entityManager, scene.state, s.Input, s.Rand,
		cfg.Physics, cfg.Round.TPS, float64(width), float64(height))
	scene.inputSystem.SetAudio(s.Audio, cfg.Assets.SoundWrong)

	scene.collisionSystem = systems.NewCollisionSystem(scene.entityManager, scene.state)
	scene.collisionSystem.SetAudio(s.Audio, cfg.Assets.SoundCorrect, cfg.Assets.SoundWrong)

	scene.updaters = []updater{scene.inputSystem, scene.collisionSystem, scene.renderSystem}

	// 窗口已被调整过时，从初始布局按比例缩放到当前尺寸
	if w, h := s.currentSize(); w != width || h != height {
		if err := scene.HandleResize(w, h); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

func (gs *GameScene) createEntities() error {
	cfg := gs.services.Config
	rm := gs.services.Resources
	em := gs.entityManager

	var err error
	gs.backgroundID, err = entities.NewBackgroundEntity(em, rm, cfg.Assets.Background, gs.width, gs.height)
	if err != nil {
		return err
	}

	binSheet := components.NewSheet(cfg.Assets.Bins, cfg.Sheets.BinTileWidth, cfg.Sheets.BinTileHeight, 1)
	gs.zoneID, err = entities.NewZoneSetEntity(em, rm, binSheet, cfg.Sheets.BinClosedTiles,
		float64(gs.width), float64(gs.height))
	if err != nil {
		return err
	}

	trashSheet := components.NewSquareSheet(cfg.Assets.Trash, cfg.Sheets.TrashTile, cfg.Sheets.TrashScale)
	if _, err := entities.NewTrashEntity(em, rm, trashSheet); err != nil {
		return err
	}

	gs.pauseID = entities.NewPauseControlEntity(em, float64(gs.width))
	return nil
}

// State 返回这局游戏的状态
func (gs *GameScene) State() *game.GameState {
	return gs.state
}

// Update 推进一个 tick
func (gs *GameScene) Update(deltaTime float64) {
	if gs.handedOff {
		return
	}

	if !gs.state.Over {
		for _, u := range gs.updaters {
			u.Update(deltaTime)
		}
	}

	if gs.state.Over {
		gs.handedOff = true
		user, score := gs.state.Result()
		gs.services.SceneManager.EnterLeaderboard(user, score)
	}
}

// Draw 绘制画面，不修改任何游戏状态
func (gs *GameScene) Draw(screen *ebiten.Image) {
	gs.renderSystem.Draw(screen)
}

// HandleResize 窗口尺寸变化后重新布局
//
// 背景图块尺寸变为窗口尺寸；垃圾桶图块按窗口宽高的比例缩放，
// 位置按新的图块尺寸重新排列；暂停按钮移到新的右边缘。两张精灵图的缓存都会重建。
func (gs *GameScene) HandleResize(width, height int) error {
	if width <= 0 || height <= 0 || (width == gs.width && height == gs.height) {
		return nil
	}
	oldW, oldH := gs.width, gs.height
	rm := gs.services.Resources

	bg, ok := ecs.GetComponent[*components.SpriteComponent](gs.entityManager, gs.backgroundID)
	if !ok {
		return fmt.Errorf("background entity %d has no sprite", gs.backgroundID)
	}
	bg.Sheet.TileWidth, bg.Sheet.TileHeight = width, height
	if _, err := rm.RebuildTiles(bg.Sheet, width, height); err != nil {
		return err
	}

	zoneSprite, ok := ecs.GetComponent[*components.SpriteComponent](gs.entityManager, gs.zoneID)
	if !ok {
		return fmt.Errorf("zone entity %d has no sprite", gs.zoneID)
	}
	zones, ok := ecs.GetComponent[*components.ZoneSetComponent](gs.entityManager, gs.zoneID)
	if !ok {
		return fmt.Errorf("zone entity %d has no zone set", gs.zoneID)
	}

	tileW, tileH := ScaleTile(zoneSprite.Sheet.TileWidth, zoneSprite.Sheet.TileHeight, oldW, oldH, width, height)
	zoneSprite.Sheet.TileWidth, zoneSprite.Sheet.TileHeight = tileW, tileH
	columns := gs.services.Config.Sheets.BinTileCount
	if _, err := rm.RebuildTiles(zoneSprite.Sheet, tileW*columns, tileH); err != nil {
		return err
	}
	zones.Positions = entities.ZonePositions(float64(width), float64(height), float64(tileW), float64(tileH))
	zones.TileOffset = components.Point{X: float64(tileW), Y: float64(tileH)}

	if pause, ok := ecs.GetComponent[*components.PauseControlComponent](gs.entityManager, gs.pauseID); ok {
		*pause = *components.PauseControlAt(float64(width))
	}

	gs.inputSystem.SetWindowSize(float64(width), float64(height))
	gs.width, gs.height = width, height

	gs.logger.Debug("layout rebuilt", "width", width, "height", height, "binTile", fmt.Sprintf("%dx%d", tileW, tileH))
	return nil
}

// ScaleTile 按窗口宽高的变化比例缩放图块尺寸: tw' = tw×W'/W, th' = th×H'/H（至少 1 像素）
func ScaleTile(tileW, tileH, oldW, oldH, newW, newH int) (int, int) {
	w := int(float64(tileW) * float64(newW) / float64(oldW))
	h := int(float64(tileH) * float64(newH) / float64(oldH))
	return max(w, 1), max(h, 1)
}
