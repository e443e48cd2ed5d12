package systems

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制一局游戏的画面
//
// 绘制顺序：背景、垃圾桶、下落的垃圾、暂停按钮、HUD 文本，暂停时再叠加遮罩和 "PAUSED"。
// Draw 只读取状态（首次绘制某张精灵图时会填充图块缓存）；
// 窗口缩放由 GameScene.HandleResize 处理，不在绘制路径中。
//
// Update 只推进动画时钟，动画精灵图按每秒 15 帧轮播。
type RenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
	state           *game.GameState

	hudFace    *text.GoTextFace
	pausedFace *text.GoTextFace

	steps  float64 // 动画累计时间（秒）
	logger *log.Logger
}

// HUDLine 一行 HUD 文本
type HUDLine struct {
	Text  string
	Color color.Color
	Y     float64
}

// NewRenderSystem 创建渲染系统并加载 HUD 字体
func NewRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager, gs *game.GameState, fontPath string) (*RenderSystem, error) {
	hudFace, err := rm.LoadFont(fontPath, config.HUDFontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	pausedFace, err := rm.LoadFont(fontPath, config.PausedFontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load PAUSED font: %w", err)
	}

	return &RenderSystem{
		entityManager:   em,
		resourceManager: rm,
		state:           gs,
		hudFace:         hudFace,
		pausedFace:      pausedFace,
		logger:          log.WithPrefix("RenderSystem"),
	}, nil
}

// Update 推进动画时钟
func (s *RenderSystem) Update(deltaTime float64) {
	s.steps += deltaTime
}

// Frame 返回当前的动画帧序号
func (s *RenderSystem) Frame() int {
	return int(s.steps * config.AnimationFPS)
}

// Draw 绘制整个画面
// 精灵图尺寸错误和垃圾桶数据不一致属于致命错误，直接 panic
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(config.ClearColor)

	s.drawBackground(screen)
	s.drawZones(screen)
	s.drawSprites(screen)
	s.drawPauseControls(screen)
	s.drawHUD(screen)

	if s.state.Paused {
		s.drawPaused(screen)
	}
}

func (s *RenderSystem) drawBackground(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.BackgroundComponent, *components.SpriteComponent](s.entityManager) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.drawTile(screen, sprite.Sheet, sprite.Index, pos.Point())
	}
}

func (s *RenderSystem) drawZones(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ZoneSetComponent, *components.SpriteComponent](s.entityManager) {
		zones, _ := ecs.GetComponent[*components.ZoneSetComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if err := zones.Validate(); err != nil {
			panic(err)
		}
		for i, p := range zones.Positions {
			s.drawTile(screen, sprite.Sheet, zones.Indices[i], p)
		}
	}
}

// drawSprites 绘制除背景和垃圾桶以外的精灵实体（下落的垃圾）
func (s *RenderSystem) drawSprites(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](s.entityManager) {
		if ecs.HasComponent[*components.BackgroundComponent](s.entityManager, id) ||
			ecs.HasComponent[*components.ZoneSetComponent](s.entityManager, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		s.drawTile(screen, sprite.Sheet, sprite.Index, pos.Point())
	}
}

// drawPauseControls 暂停按钮没有精灵图，画成两条黑色竖条
func (s *RenderSystem) drawPauseControls(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.PauseControlComponent](s.entityManager) {
		pause, _ := ecs.GetComponent[*components.PauseControlComponent](s.entityManager, id)
		for _, bar := range pause.Bars {
			vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H),
				config.PauseBarColor, false)
		}
	}
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	for _, line := range HUDLines(s.state) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(0, line.Y)
		op.ColorScale.ScaleWithColor(line.Color)
		text.Draw(screen, line.Text, s.hudFace, op)
	}
}

func (s *RenderSystem) drawPaused(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	vector.DrawFilledRect(screen, 0, 0, w, h, config.PausedOverlayColor, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(w)/2-config.PausedOffsetX, float64(h)/2-config.PausedOffsetY)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, "PAUSED", s.pausedFace, op)
}

// drawTile 绘制精灵图中的一个图块；动画精灵图忽略 index，按当前帧取图块
func (s *RenderSystem) drawTile(screen *ebiten.Image, sheet *components.SpriteSheet, index int, at components.Point) {
	tiles, err := s.resourceManager.LoadTiles(sheet)
	if err != nil {
		if errors.Is(err, game.ErrSheetDimensions) {
			panic(err)
		}
		s.logger.Error("cannot draw sprite", "sheet", sheet.Path, "err", err)
		return
	}
	if len(tiles) == 0 {
		return
	}

	if sheet.Animated {
		index = s.Frame() % len(tiles)
	}
	if index < 0 || index >= len(tiles) {
		s.logger.Error("tile index out of range", "sheet", sheet.Path, "index", index, "tiles", len(tiles))
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(at.X, at.Y)
	screen.DrawImage(tiles[index], op)
}

// HUDLines 返回左上角四行 HUD 文本：正确数、错误数、名字（按性别着色）、剩余时间
func HUDLines(gs *game.GameState) []HUDLine {
	texts := []struct {
		text string
		c    color.Color
	}{
		{fmt.Sprintf("Trash successfully recycled: %d", gs.Right), config.HUDTextColor},
		{fmt.Sprintf("Trash not recycled: %d", gs.Wrong), config.HUDTextColor},
		{"Name: " + gs.Player.Name, config.NameColor(gs.Player.Gender)},
		{fmt.Sprintf("Time remaining: %d", gs.RemainingSeconds()), config.HUDTextColor},
	}

	lines := make([]HUDLine, len(texts))
	for i, t := range texts {
		lines[i] = HUDLine{Text: t.text, Color: t.c, Y: float64(i) * config.HUDLineHeight}
	}
	return lines
}
