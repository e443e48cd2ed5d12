package components

import "math"

// Point 屏幕坐标中的一个点（左上角原点）
type Point struct {
	X, Y float64
}

// Rect 屏幕坐标中的矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否严格位于矩形内部（边界上不算命中）
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Center 返回左上角为 pos、尺寸为 w×h 的矩形中心
func Center(pos Point, w, h float64) Point {
	return Point{X: pos.X + w/2, Y: pos.Y + h/2}
}

// HalfDiagonal 返回 w×h 矩形对角线的一半: sqrt((w/2)^2 + (h/2)^2)
func HalfDiagonal(w, h float64) float64 {
	return math.Sqrt((w/2)*(w/2) + (h/2)*(h/2))
}

// Distance 返回两点之间的欧氏距离
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
