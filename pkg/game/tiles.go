package game

import (
	"errors"
	"fmt"
	"image"
)

// ErrSheetDimensions 精灵图尺寸不能被图块尺寸整除
var ErrSheetDimensions = errors.New("sprite sheet width and height are not a multiple of its tile size")

// TileGrid 把 imgW×imgH 的图片按 tileW×tileH 切分，按行优先顺序返回每个图块的区域
//
// 下标与精灵图中的平铺下标一致：第一行从左到右为 0..cols-1，然后是第二行，依此类推。
// 图片尺寸必须恰好是图块尺寸的整数倍，否则返回 ErrSheetDimensions。
func TileGrid(imgW, imgH, tileW, tileH int) ([]image.Rectangle, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: invalid tile size %dx%d", ErrSheetDimensions, tileW, tileH)
	}
	if imgW%tileW != 0 || imgH%tileH != 0 {
		return nil, fmt.Errorf("%w: image %dx%d, tile %dx%d", ErrSheetDimensions, imgW, imgH, tileW, tileH)
	}

	cols := imgW / tileW
	rows := imgH / tileH
	rects := make([]image.Rectangle, 0, cols*rows)
	for y := 0; y < imgH; y += tileH {
		for x := 0; x < imgW; x += tileW {
			rects = append(rects, image.Rect(x, y, x+tileW, y+tileH))
		}
	}
	return rects, nil
}
