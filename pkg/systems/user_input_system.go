package systems

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// UserInputSystem 根据玩家输入和重力推进下落中的垃圾，并处理暂停与倒计时
//
// 每个 tick 的顺序：
//  1. 点击暂停按钮切换暂停（暂停期间其余步骤全部跳过）
//  2. 垃圾不在下落时在顶部随机重新生成
//  3. 垃圾下落，速度倍率随时间线性增长到上限；越过窗口底部计为一次错误
//  4. 方向键微调位置（只响应第一个按住的键：左、右、下）
//  5. 横坐标限制在窗口内
//  6. 倒计时
//
// 速度倍率属于系统实例，只有重新创建系统才会重置。
type UserInputSystem struct {
	entityManager *ecs.EntityManager
	state         *game.GameState
	input         InputSource
	rng           *rand.Rand
	audio         *game.AudioManager
	missSound     string

	physics config.PhysicsConfig
	tps     float64

	windowW, windowH float64
	multiplier       float64

	logger *log.Logger
}

// NewUserInputSystem 创建输入系统
// 参数:
//   - em: 当前这局游戏的 EntityManager
//   - gs: 当前这局游戏的状态
//   - input: 输入来源
//   - rng: 随机数生成器（重新生成垃圾时使用）
//   - physics: 下落和操作参数
//   - tps: 每秒逻辑更新次数，下落距离按 dt×tps 换算成 tick 数
func NewUserInputSystem(em *ecs.EntityManager, gs *game.GameState, input InputSource, rng *rand.Rand,
	physics config.PhysicsConfig, tps int, windowW, windowH float64) *UserInputSystem {
	return &UserInputSystem{
		entityManager: em,
		state:         gs,
		input:         input,
		rng:           rng,
		physics:       physics,
		tps:           float64(tps),
		windowW:       windowW,
		windowH:       windowH,
		multiplier:    1,
		logger:        log.WithPrefix("UserInputSystem"),
	}
}

// SetAudio 设置垃圾掉出屏幕时播放的音效
func (s *UserInputSystem) SetAudio(am *game.AudioManager, missSound string) {
	s.audio = am
	s.missSound = missSound
}

// SetWindowSize 更新窗口尺寸（窗口缩放后调用）
func (s *UserInputSystem) SetWindowSize(w, h float64) {
	s.windowW, s.windowH = w, h
}

// Multiplier 返回当前的下落速度倍率
func (s *UserInputSystem) Multiplier() float64 {
	return s.multiplier
}

// Update 处理一个 tick 的输入
func (s *UserInputSystem) Update(deltaTime float64) {
	s.handlePauseClick()

	if s.state.Paused {
		return
	}

	id, falling, ok := ecs.First[*components.FallingComponent](s.entityManager)
	if ok {
		pos, hasPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		sprite, hasSprite := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if hasPos && hasSprite {
			s.moveTrash(deltaTime, pos, sprite, falling)
		}
	}

	s.state.AdvanceClock(deltaTime)
}

// handlePauseClick 鼠标点击落在暂停按钮内部时切换暂停
func (s *UserInputSystem) handlePauseClick() {
	if !s.input.MouseJustClicked() {
		return
	}

	_, pause, ok := ecs.First[*components.PauseControlComponent](s.entityManager)
	if !ok {
		return
	}

	mx, my := s.input.CursorPosition()
	if !pause.HitRect.Contains(float64(mx), float64(my)) {
		return
	}

	pause.Clicked = true
	s.state.TogglePause()
	s.logger.Debug("pause toggled", "paused", s.state.Paused, "remaining", s.state.Remaining)
}

func (s *UserInputSystem) moveTrash(dt float64, pos *components.PositionComponent,
	sprite *components.SpriteComponent, falling *components.FallingComponent) {
	maxX := s.maxX(sprite.Sheet)

	if !falling.Falling {
		s.respawn(pos, sprite, falling, maxX)
	} else {
		s.multiplier = math.Min(s.multiplier+dt*s.physics.VelocityRate, s.physics.VelocityCap)
		pos.Y += s.physics.FallStep * s.multiplier * dt * s.tps

		if pos.Y >= s.windowH {
			falling.Falling = false
			s.state.AddWrong()
			s.audio.PlaySound(s.missSound)
			s.logger.Debug("trash missed", "index", sprite.Index, "wrong", s.state.Wrong)
		}
	}

	switch {
	case s.input.KeyPressed(ebiten.KeyLeft):
		pos.X -= s.physics.NudgeX
	case s.input.KeyPressed(ebiten.KeyRight):
		pos.X += s.physics.NudgeX
	case s.input.KeyPressed(ebiten.KeyDown):
		pos.Y += s.physics.NudgeDown
	}

	pos.X = clamp(pos.X, 0, maxX)
}

// respawn 把垃圾放回顶部，随机选择横坐标和种类
func (s *UserInputSystem) respawn(pos *components.PositionComponent, sprite *components.SpriteComponent,
	falling *components.FallingComponent, maxX float64) {
	sprite.Index = s.rng.Intn(components.TrashKinds)
	pos.Y = s.physics.SpawnY
	pos.X = 0
	if maxX >= 1 {
		pos.X = float64(s.rng.Intn(int(maxX) + 1))
	}
	falling.Falling = true
}

// maxX 垃圾左上角横坐标的上限：窗口宽度减去缩放后的图块宽度
func (s *UserInputSystem) maxX(sheet *components.SpriteSheet) float64 {
	tileW, _ := sheet.ScaledTileSize()
	return math.Max(0, s.windowW-float64(tileW))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
