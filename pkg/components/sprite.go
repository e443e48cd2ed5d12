package components

import "fmt"

// SpriteSheet 描述一张精灵图：文件路径、单个图块尺寸、缩放倍数以及图块是否为动画帧
//
// Path 同时作为 ResourceManager 图块缓存的键。
// 正方形图块的 TileWidth 与 TileHeight 相同。
type SpriteSheet struct {
	Path       string
	TileWidth  int
	TileHeight int
	Scale      int  // 加载后整张图的放大倍数，1 表示原始尺寸
	Animated   bool // 为 true 时渲染系统按 15 帧/秒轮播全部图块
}

// NewSquareSheet 创建正方形图块的精灵图描述
func NewSquareSheet(path string, tile, scale int) *SpriteSheet {
	return &SpriteSheet{Path: path, TileWidth: tile, TileHeight: tile, Scale: scale}
}

// NewSheet 创建宽高不同的精灵图描述
func NewSheet(path string, tileWidth, tileHeight, scale int) *SpriteSheet {
	return &SpriteSheet{Path: path, TileWidth: tileWidth, TileHeight: tileHeight, Scale: scale}
}

// TileSize 返回未缩放的图块尺寸（碰撞检测使用这个尺寸）
func (s *SpriteSheet) TileSize() (float64, float64) {
	return float64(s.TileWidth), float64(s.TileHeight)
}

// ScaledTileSize 返回缩放后的图块尺寸（屏幕上的实际像素）
func (s *SpriteSheet) ScaledTileSize() (int, int) {
	scale := s.scale()
	return s.TileWidth * scale, s.TileHeight * scale
}

func (s *SpriteSheet) scale() int {
	if s.Scale < 1 {
		return 1
	}
	return s.Scale
}

func (s *SpriteSheet) String() string {
	return fmt.Sprintf("%s (%dx%d x%d)", s.Path, s.TileWidth, s.TileHeight, s.scale())
}

// SpriteComponent 存储实体的视觉表现：所用精灵图和当前图块下标
// ZoneSet 这类一个精灵图绘制多次的实体忽略 Index，使用 ZoneSetComponent.Indices
type SpriteComponent struct {
	Sheet *SpriteSheet
	Index int
}
