package components

// BackgroundComponent 标记铺满窗口的背景实体，窗口尺寸变化时需要重新缩放
type BackgroundComponent struct{}
