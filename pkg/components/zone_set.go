package components

import (
	"errors"
	"fmt"
)

// ErrZoneMismatch 垃圾桶位置列表与图块下标列表长度不一致
var ErrZoneMismatch = errors.New("zone positions and indices differ in length")

// ZoneSetComponent 描述同一张精灵图绘制出的一组垃圾桶（从左到右排列）
//
// Indices[i] 是第 i 个垃圾桶当前显示的图块；Closed[i] 是它关闭状态的图块，
// 打开状态的图块固定为 Closed[i]+1。
type ZoneSetComponent struct {
	Indices    []int
	Closed     []int
	Positions  []Point
	TileOffset Point
}

// NewZoneSet 创建垃圾桶组，初始全部为关闭状态
func NewZoneSet(closed []int, positions []Point, offset Point) *ZoneSetComponent {
	indices := make([]int, len(closed))
	copy(indices, closed)
	return &ZoneSetComponent{
		Indices:    indices,
		Closed:     append([]int(nil), closed...),
		Positions:  positions,
		TileOffset: offset,
	}
}

// Validate 检查位置与图块下标一一对应
func (z *ZoneSetComponent) Validate() error {
	if len(z.Indices) != len(z.Positions) {
		return fmt.Errorf("%w: %d positions, %d indices", ErrZoneMismatch, len(z.Positions), len(z.Indices))
	}
	return nil
}

// SetOpen 切换第 i 个垃圾桶的开合状态
func (z *ZoneSetComponent) SetOpen(i int, open bool) {
	if i < 0 || i >= len(z.Indices) || i >= len(z.Closed) {
		return
	}
	if open {
		z.Indices[i] = z.Closed[i] + 1
	} else {
		z.Indices[i] = z.Closed[i]
	}
}
