package scenes

import (
	"bytes"
	"image"
	"image/png"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
)

type fakeInput struct {
	keys    map[ebiten.Key]bool
	x, y    int
	clicked bool
}

func (f *fakeInput) KeyPressed(key ebiten.Key) bool { return f.keys[key] }
func (f *fakeInput) CursorPosition() (int, int)     { return f.x, f.y }
func (f *fakeInput) MouseJustClicked() bool         { return f.clicked }

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// newTestServices 使用默认配置和内存中的资源目录组装场景依赖
// 字体文件缺失，使用内置的 Go Regular 字体
func newTestServices(t *testing.T) *Services {
	t.Helper()
	cfg := config.DefaultGameConfig()
	assets := fstest.MapFS{
		cfg.Assets.Background: {Data: encodePNG(t, 136, 77)},
		cfg.Assets.Trash:      {Data: encodePNG(t, 180, 180)},
		cfg.Assets.Bins:       {Data: encodePNG(t, 864, 188)},
		cfg.Assets.Logo:       {Data: encodePNG(t, 200, 100)},
	}

	s := &Services{
		Config:       cfg,
		Resources:    game.NewResourceManager(assets, nil),
		SceneManager: game.NewSceneManager(),
		Board:        leaderboard.NewMemoryBoard(),
		Input:        &fakeInput{keys: make(map[ebiten.Key]bool)},
		Rand:         rand.New(rand.NewSource(7)),
	}
	s.SceneManager.SetSceneFactories(s.Factories())
	return s
}

func newTestGameScene(t *testing.T, s *Services) *GameScene {
	t.Helper()
	scene, err := NewGameScene(s, leaderboard.User{Name: "Lee", Gender: "Girl"})
	if err != nil {
		t.Fatalf("NewGameScene() error: %v", err)
	}
	s.SceneManager.SwitchTo(scene)
	return scene
}
