package components

// PositionComponent 存储实体左上角的屏幕坐标
type PositionComponent struct {
	X float64
	Y float64
}

// Point 返回位置对应的 Point
func (p *PositionComponent) Point() Point {
	return Point{X: p.X, Y: p.Y}
}
