package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (main menu, gameplay, leaderboard).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// Draw must not change game state.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，窗口外部尺寸变化时由框架调用一次
//
// 实现此接口的场景在 HandleResize 中重新计算布局并重建受影响的图块缓存，
// 绘制路径因此保持无副作用。
type Resizable interface {
	HandleResize(width, height int) error
}
