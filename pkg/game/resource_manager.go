package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads images, sprite-sheet tiles, fonts and sound effects from an asset
// file system and caches them by path, so every file is decoded only once.
//
// The tile cache maps a sprite sheet path to its ordered tiles. Entries are
// populated lazily on first use and never evicted; RebuildTiles replaces an
// entry when the window is resized.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The game loop is single-threaded and
// all access happens from Update/Draw.
//
// Usage:
//
//	rm := NewResourceManager(os.DirFS("assets"), audioContext)
//	tile, err := rm.Tile(sheet, 4)
type ResourceManager struct {
	assets       fs.FS
	audioContext *audio.Context // may be nil: sound effects are then disabled

	imageCache      map[string]*ebiten.Image             // Cache for decoded images: path -> Image
	tileCache       map[string][]*ebiten.Image           // Cache for sliced sheets: path -> tiles
	fontSourceCache map[string]*text.GoTextFaceSource    // Cache for parsed fonts: path -> source
	fontFaceCache   map[string]*text.GoTextFace          // Cache for faces: "path:size" -> face
	audioCache      map[string]*audio.Player             // Cache for sound effect players: path -> Player
	logger          *log.Logger
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - assets: The file system that asset paths are resolved against (usually os.DirFS of the asset root).
//   - audioContext: The global audio context, or nil to disable sound effects.
func NewResourceManager(assets fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		assets:          assets,
		audioContext:    audioContext,
		imageCache:      make(map[string]*ebiten.Image),
		tileCache:       make(map[string][]*ebiten.Image),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
		audioCache:      make(map[string]*audio.Player),
		logger:          log.WithPrefix("ResourceManager"),
	}
}

// LoadImage loads an image file from the asset file system and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Returns:
//   - A pointer to the loaded ebiten.Image.
//   - An error if the file cannot be opened or decoded.
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[p]; exists {
		return cachedImage, nil
	}

	img, err := rm.decodeImage(p)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

func (rm *ResourceManager) decodeImage(p string) (image.Image, error) {
	file, err := rm.assets.Open(cleanPath(p))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

// LoadTiles returns the tiles of a sprite sheet, slicing and caching them on first use.
//
// The sheet image is first scaled by sheet.Scale, then cut into
// (TileWidth*Scale)×(TileHeight*Scale) tiles in row-major order. A sheet whose
// scaled dimensions are not an exact multiple of the scaled tile size fails with
// ErrSheetDimensions.
func (rm *ResourceManager) LoadTiles(sheet *components.SpriteSheet) ([]*ebiten.Image, error) {
	if tiles, ok := rm.tileCache[sheet.Path]; ok {
		return tiles, nil
	}

	src, err := rm.LoadImage(sheet.Path)
	if err != nil {
		return nil, err
	}

	scaled := src
	if scale := sheet.Scale; scale > 1 {
		b := src.Bounds()
		scaled = scaleImage(src, b.Dx()*scale, b.Dy()*scale)
	}

	tileW, tileH := sheet.ScaledTileSize()
	tiles, err := sliceTiles(scaled, tileW, tileH)
	if err != nil {
		return nil, fmt.Errorf("failed to slice %s: %w", sheet, err)
	}

	rm.tileCache[sheet.Path] = tiles
	rm.logger.Debug("sprite sheet sliced", "path", sheet.Path, "tiles", len(tiles))
	return tiles, nil
}

// Tile returns tile index of the sheet, loading the sheet if necessary.
func (rm *ResourceManager) Tile(sheet *components.SpriteSheet, index int) (*ebiten.Image, error) {
	tiles, err := rm.LoadTiles(sheet)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(tiles) {
		return nil, fmt.Errorf("tile index %d out of range for %s (%d tiles)", index, sheet.Path, len(tiles))
	}
	return tiles[index], nil
}

// RebuildTiles rescales the source image of a sheet to exactly width×height pixels
// and replaces its cache entry with tiles of the sheet's (already updated) tile size.
//
// It is used by the resize handler: the background is stretched to the window and
// the bin sheet is rescaled in proportion to it.
func (rm *ResourceManager) RebuildTiles(sheet *components.SpriteSheet, width, height int) ([]*ebiten.Image, error) {
	src, err := rm.LoadImage(sheet.Path)
	if err != nil {
		return nil, err
	}

	scaled := scaleImage(src, width, height)
	tileW, tileH := sheet.ScaledTileSize()
	tiles, err := sliceTiles(scaled, tileW, tileH)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild %s at %dx%d: %w", sheet, width, height, err)
	}

	rm.tileCache[sheet.Path] = tiles
	rm.logger.Debug("sprite sheet rebuilt", "path", sheet.Path, "width", width, "height", height)
	return tiles, nil
}

// ReloadTiles drops any cached tiles of the sheet and slices it again at its
// current tile size. A new game uses it to undo a previous game's resize.
func (rm *ResourceManager) ReloadTiles(sheet *components.SpriteSheet) ([]*ebiten.Image, error) {
	delete(rm.tileCache, sheet.Path)
	return rm.LoadTiles(sheet)
}

// HasTiles reports whether the sheet at path has been sliced into the cache.
func (rm *ResourceManager) HasTiles(p string) bool {
	_, ok := rm.tileCache[p]
	return ok
}

// LoadFont loads a TrueType/OpenType font from the asset file system and creates a text
// face with the given size. An empty path, or a font file that does not exist, falls back
// to the bundled Go Regular face.
//
// Returns:
//   - A pointer to the text.GoTextFace ready for rendering.
//   - An error if the file exists but cannot be read or parsed.
func (rm *ResourceManager) LoadFont(p string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", p, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(p)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

func (rm *ResourceManager) fontSource(p string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSourceCache[p]; ok {
		return source, nil
	}

	fontData := goregular.TTF
	if p != "" {
		data, err := fs.ReadFile(rm.assets, cleanPath(p))
		switch {
		case err == nil:
			fontData = data
		case errors.Is(err, fs.ErrNotExist):
			rm.logger.Warn("font file not found, using Go Regular", "path", p)
		default:
			return nil, fmt.Errorf("failed to read font file %s: %w", p, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", p, err)
	}
	rm.fontSourceCache[p] = source
	return source, nil
}

// LoadSoundEffect loads a one-shot sound effect (.ogg or .mp3) and caches its player.
//
// Returns:
//   - The player, ready to be rewound and played.
//   - An error if audio is disabled, the file is missing, or the format is unsupported.
func (rm *ResourceManager) LoadSoundEffect(p string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[p]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, errors.New("audio context is not available")
	}

	audioData, err := fs.ReadFile(rm.assets, cleanPath(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", p, err)
	}
	reader := bytes.NewReader(audioData)

	var stream io.ReadSeeker
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", p, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", p, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", p, err)
	}

	rm.audioCache[p] = player
	return player, nil
}

// sliceTiles cuts img into tiles using TileGrid.
func sliceTiles(img *ebiten.Image, tileW, tileH int) ([]*ebiten.Image, error) {
	b := img.Bounds()
	rects, err := TileGrid(b.Dx(), b.Dy(), tileW, tileH)
	if err != nil {
		return nil, err
	}

	tiles := make([]*ebiten.Image, len(rects))
	for i, r := range rects {
		tiles[i] = img.SubImage(r.Add(b.Min)).(*ebiten.Image)
	}
	return tiles, nil
}

// scaleImage draws src stretched onto a new width×height image.
func scaleImage(src *ebiten.Image, width, height int) *ebiten.Image {
	b := src.Bounds()
	dst := ebiten.NewImage(width, height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
	return dst
}

// cleanPath converts a config path into an fs.FS path (slash separated, no leading "./").
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(path.Clean(p), "./")
}
