package components

// FallingComponent 标记下落中的垃圾
//
// Falling 为 false 表示垃圾已经落入某个垃圾桶或掉出屏幕，
// 输入系统会在下一个 tick 把它重新生成到屏幕顶部。
type FallingComponent struct {
	Falling bool
	OffsetX float64 // 预留的绘制偏移，目前始终为 0
	OffsetY float64
}

// TrashKinds 垃圾种类数量，图块下标范围 [0, TrashKinds)
const TrashKinds = 9

// TrashPerZone 每个垃圾桶对应的垃圾种类数，下标 k 的垃圾属于 k/TrashPerZone 号垃圾桶
const TrashPerZone = 3

// ZoneFor 返回图块下标对应的正确垃圾桶序号
func ZoneFor(index int) int {
	return index / TrashPerZone
}
