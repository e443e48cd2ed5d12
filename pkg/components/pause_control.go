package components

// PauseControlComponent 右上角的暂停按钮（两条黑色竖条，没有精灵图）
type PauseControlComponent struct {
	Bars    [2]Rect // 绘制用的两条竖条
	HitRect Rect    // 点击判定区域
	Clicked bool
}

// PauseControlAt 根据窗口宽度生成暂停按钮布局
func PauseControlAt(windowWidth float64) *PauseControlComponent {
	return &PauseControlComponent{
		Bars: [2]Rect{
			{X: windowWidth - 50, Y: 10, W: 10, H: 50},
			{X: windowWidth - 25, Y: 10, W: 10, H: 50},
		},
		HitRect: Rect{X: windowWidth - 50, Y: 10, W: 35, H: 50},
	}
}
