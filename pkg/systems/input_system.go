package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource 提供一个 tick 内的键盘与鼠标状态
// 游戏中使用 EbitenInput，测试中使用可编程的假实现
type InputSource interface {
	// KeyPressed 报告按键当前是否被按住
	KeyPressed(key ebiten.Key) bool
	// CursorPosition 返回鼠标在窗口中的坐标
	CursorPosition() (int, int)
	// MouseJustClicked 报告鼠标左键是否在本 tick 刚被按下
	MouseJustClicked() bool
}

// EbitenInput 直接读取 ebiten 的输入状态
type EbitenInput struct{}

func (EbitenInput) KeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (EbitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (EbitenInput) MouseJustClicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
