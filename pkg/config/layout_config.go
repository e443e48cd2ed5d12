package config

import "image/color"

// 布局配置常量
// 本文件定义了游戏画面中的布局参数：垃圾桶排布、HUD 文本、暂停遮罩、菜单等

// ZoneCount 垃圾桶数量（从左到右: 0, 1, 2）
const ZoneCount = 3

// HUD 文本配置
const (
	// HUDFontSize HUD 文本字号
	HUDFontSize = 45.0
	// HUDLineHeight HUD 每行文本的纵向间距（像素）
	HUDLineHeight = 30.0
	// PausedFontSize "PAUSED" 字号
	PausedFontSize = 105.0
	// PausedOffsetX / PausedOffsetY "PAUSED" 相对窗口中心的偏移
	PausedOffsetX = 180.0
	PausedOffsetY = 105.0
	// AnimationFPS 动画精灵图的播放帧率
	AnimationFPS = 15.0
)

// 菜单字号，与 small / normal / large / heading 四档对应
const (
	MenuFontSmall   = 35.0
	MenuFontNormal  = 55.0
	MenuFontLarge   = 75.0
	MenuFontHeading = 95.0
	// MenuLineHeight 菜单选项的行距
	MenuLineHeight = 55.0
)

var (
	// ClearColor 每帧先用这个颜色清屏
	ClearColor = color.RGBA{R: 77, G: 140, B: 242, A: 255}
	// HUDTextColor 计分和计时文本颜色
	HUDTextColor = color.RGBA{A: 255}
	// BoyNameColor / GirlNameColor 名字按性别着色
	BoyNameColor  = color.RGBA{R: 66, G: 179, B: 244, A: 255}
	GirlNameColor = color.RGBA{R: 244, G: 66, B: 241, A: 255}
	// PauseBarColor 暂停按钮竖条颜色
	PauseBarColor = color.RGBA{A: 255}
	// PausedOverlayColor 暂停时的半透明遮罩
	PausedOverlayColor = color.RGBA{A: 128}
	// MenuTextColor 菜单文字颜色
	MenuTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ZoneLayout 根据窗口和垃圾桶图块尺寸计算三个垃圾桶的左上角坐标
// 左右两个垃圾桶距窗口边缘一个图块宽度，中间的垃圾桶居中，全部贴底
func ZoneLayout(windowW, windowH, tileW, tileH float64) [ZoneCount][2]float64 {
	y := windowH - tileH
	return [ZoneCount][2]float64{
		{tileW, y},
		{tileW + (windowW-3*tileW)/2, y},
		{windowW - 2*tileW, y},
	}
}

// NameColor 根据性别返回名字颜色
func NameColor(gender string) color.Color {
	if gender == "Boy" {
		return BoyNameColor
	}
	return GirlNameColor
}
