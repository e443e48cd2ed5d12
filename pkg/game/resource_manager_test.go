package game

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/decker502/earthday/pkg/components"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// encodePNG creates a solid w×h PNG image.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, blue)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// testAssets 构造一个内存中的资源目录
//   - trash.png: 3x3 个 6x6 图块
//   - bins.png: 6 个 4x5 图块排成一行
//   - odd.png: 7x6，无法按 6x6 切分
func testAssets(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"images/trash.png": {Data: encodePNG(t, 18, 18)},
		"images/bins.png":  {Data: encodePNG(t, 24, 5)},
		"images/odd.png":   {Data: encodePNG(t, 7, 6)},
		"images/bad.png":   {Data: []byte("not a png")},
		"sounds/beep.wav":  {Data: []byte("RIFF")},
	}
}

func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAssets(t), testAudioContext)

	if rm.imageCache == nil || rm.tileCache == nil || rm.audioCache == nil {
		t.Error("caches are not initialized")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
}

func TestLoadImage(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	img, err := rm.LoadImage("images/trash.png")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 18 || b.Dy() != 18 {
		t.Errorf("Image dimensions incorrect: got %dx%d, want 18x18", b.Dx(), b.Dy())
	}

	if _, err := rm.LoadImage("./images/trash.png"); err != nil {
		t.Fatalf("LoadImage with ./ prefix failed: %v", err)
	}

	cached, _ := rm.LoadImage("images/trash.png")
	if cached != img {
		t.Error("second LoadImage should return the cached image")
	}
}

func TestLoadImageErrors(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	tests := []struct {
		name string
		path string
	}{
		{"文件不存在", "images/missing.png"},
		{"格式错误", "images/bad.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rm.LoadImage(tt.path); err == nil {
				t.Errorf("LoadImage(%q) should fail", tt.path)
			}
		})
	}
}

func TestLoadTiles(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	sheet := components.NewSquareSheet("images/trash.png", 6, 1)
	tiles, err := rm.LoadTiles(sheet)
	if err != nil {
		t.Fatalf("LoadTiles failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("got %d tiles, want 9", len(tiles))
	}
	for i, tile := range tiles {
		if b := tile.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
			t.Errorf("tile %d is %dx%d, want 6x6", i, b.Dx(), b.Dy())
		}
	}

	// 行优先：下标 4 位于第二行第二列
	if origin := tiles[4].Bounds().Min; origin.X != 6 || origin.Y != 6 {
		t.Errorf("tile 4 origin = %v, want (6,6)", origin)
	}
	if !rm.HasTiles("images/trash.png") {
		t.Error("HasTiles should report the sliced sheet")
	}
}

func TestLoadTilesScaled(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	sheet := components.NewSquareSheet("images/trash.png", 6, 2)
	tiles, err := rm.LoadTiles(sheet)
	if err != nil {
		t.Fatalf("LoadTiles failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("got %d tiles, want 9", len(tiles))
	}
	if b := tiles[8].Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Errorf("scaled tile is %dx%d, want 12x12", b.Dx(), b.Dy())
	}
}

func TestLoadTilesBadDimensions(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	_, err := rm.LoadTiles(components.NewSquareSheet("images/odd.png", 6, 1))
	if !errors.Is(err, ErrSheetDimensions) {
		t.Errorf("LoadTiles error = %v, want ErrSheetDimensions", err)
	}
	if rm.HasTiles("images/odd.png") {
		t.Error("failed sheet must not be cached")
	}
}

func TestTile(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)
	sheet := components.NewSheet("images/bins.png", 4, 5, 1)

	tile, err := rm.Tile(sheet, 5)
	if err != nil {
		t.Fatalf("Tile(5) failed: %v", err)
	}
	if origin := tile.Bounds().Min; origin.X != 20 || origin.Y != 0 {
		t.Errorf("tile 5 origin = %v, want (20,0)", origin)
	}

	for _, idx := range []int{-1, 6} {
		if _, err := rm.Tile(sheet, idx); err == nil {
			t.Errorf("Tile(%d) should fail", idx)
		}
	}
}

func TestRebuildTiles(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)
	sheet := components.NewSheet("images/bins.png", 4, 5, 1)
	if _, err := rm.LoadTiles(sheet); err != nil {
		t.Fatal(err)
	}

	// 窗口放大一倍后，图块尺寸同步放大
	sheet.TileWidth, sheet.TileHeight = 8, 10
	tiles, err := rm.RebuildTiles(sheet, 48, 10)
	if err != nil {
		t.Fatalf("RebuildTiles failed: %v", err)
	}
	if len(tiles) != 6 {
		t.Fatalf("got %d tiles, want 6", len(tiles))
	}
	if b := tiles[0].Bounds(); b.Dx() != 8 || b.Dy() != 10 {
		t.Errorf("rebuilt tile is %dx%d, want 8x10", b.Dx(), b.Dy())
	}

	cached, _ := rm.LoadTiles(sheet)
	if cached[0] != tiles[0] {
		t.Error("LoadTiles should return the rebuilt cache entry")
	}

	if _, err := rm.RebuildTiles(sheet, 47, 10); !errors.Is(err, ErrSheetDimensions) {
		t.Errorf("RebuildTiles to an indivisible size = %v, want ErrSheetDimensions", err)
	}
}

func TestReloadTiles(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)
	sheet := components.NewSheet("images/bins.png", 4, 5, 1)
	if _, err := rm.RebuildTiles(components.NewSheet("images/bins.png", 8, 10, 1), 48, 10); err != nil {
		t.Fatal(err)
	}

	tiles, err := rm.ReloadTiles(sheet)
	if err != nil {
		t.Fatalf("ReloadTiles failed: %v", err)
	}
	if b := tiles[0].Bounds(); b.Dx() != 4 || b.Dy() != 5 {
		t.Errorf("reloaded tile is %dx%d, want 4x5", b.Dx(), b.Dy())
	}
}

func TestLoadFontFallback(t *testing.T) {
	rm := NewResourceManager(testAssets(t), nil)

	for _, p := range []string{"", "fonts/missing.ttf"} {
		face, err := rm.LoadFont(p, 45)
		if err != nil {
			t.Fatalf("LoadFont(%q) failed: %v", p, err)
		}
		if face.Size != 45 {
			t.Errorf("face size = %v, want 45", face.Size)
		}
	}

	a, _ := rm.LoadFont("", 30)
	b, _ := rm.LoadFont("", 30)
	if a != b {
		t.Error("font faces should be cached by path and size")
	}
}

func TestLoadFontInvalid(t *testing.T) {
	assets := testAssets(t)
	assets["fonts/broken.ttf"] = &fstest.MapFile{Data: []byte("definitely not a font")}
	rm := NewResourceManager(assets, nil)

	if _, err := rm.LoadFont("fonts/broken.ttf", 20); err == nil {
		t.Error("LoadFont should fail on a corrupt font file")
	}
}

func TestLoadSoundEffectErrors(t *testing.T) {
	t.Run("没有音频上下文", func(t *testing.T) {
		rm := NewResourceManager(testAssets(t), nil)
		if _, err := rm.LoadSoundEffect("sounds/correct.ogg"); err == nil {
			t.Error("expected error without audio context")
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		rm := NewResourceManager(testAssets(t), testAudioContext)
		if _, err := rm.LoadSoundEffect("sounds/missing.ogg"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("不支持的格式", func(t *testing.T) {
		rm := NewResourceManager(testAssets(t), testAudioContext)
		if _, err := rm.LoadSoundEffect("sounds/beep.wav"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"images/a.png", "images/a.png"},
		{"./images/a.png", "images/a.png"},
		{"images\\a.png", "images/a.png"},
		{"images//x/../a.png", "images/a.png"},
	}
	for _, tt := range tests {
		if got := cleanPath(tt.in); got != tt.want {
			t.Errorf("cleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
