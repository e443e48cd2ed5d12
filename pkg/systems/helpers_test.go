package systems

import (
	"bytes"
	"image"
	"image/png"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/decker502/earthday/pkg/components"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/ecs"
	"github.com/decker502/earthday/pkg/entities"
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	testWindowW = 1360.0
	testWindowH = 765.0
	tick        = 1.0 / 60.0
)

// fakeInput 可编程的输入来源
type fakeInput struct {
	keys    map[ebiten.Key]bool
	x, y    int
	clicked bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{keys: make(map[ebiten.Key]bool)}
}

func (f *fakeInput) KeyPressed(key ebiten.Key) bool { return f.keys[key] }
func (f *fakeInput) CursorPosition() (int, int)     { return f.x, f.y }
func (f *fakeInput) MouseJustClicked() bool         { return f.clicked }

// click 在 (x, y) 处模拟一次点击
func (f *fakeInput) click(x, y int) {
	f.x, f.y, f.clicked = x, y, true
}

// testWorld 一局游戏的最小实体集合：垃圾、三个垃圾桶、暂停按钮
type testWorld struct {
	em      *ecs.EntityManager
	state   *game.GameState
	trashID ecs.EntityID
	zoneID  ecs.EntityID
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	em := ecs.NewEntityManager()

	trashID, err := entities.NewTrashEntity(em, nil, components.NewSquareSheet("images/trash.png", 60, 2))
	if err != nil {
		t.Fatalf("NewTrashEntity() error: %v", err)
	}
	zoneID, err := entities.NewZoneSetEntity(em, nil, components.NewSheet("images/bins.png", 144, 188, 1),
		[]int{0, 2, 4}, testWindowW, testWindowH)
	if err != nil {
		t.Fatalf("NewZoneSetEntity() error: %v", err)
	}
	entities.NewPauseControlEntity(em, testWindowW)

	return &testWorld{
		em:      em,
		state:   game.NewGameState(leaderboard.User{Name: "Kim", Gender: "Boy"}, 120),
		trashID: trashID,
		zoneID:  zoneID,
	}
}

func (w *testWorld) trash() (*components.PositionComponent, *components.SpriteComponent, *components.FallingComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.trashID)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](w.em, w.trashID)
	falling, _ := ecs.GetComponent[*components.FallingComponent](w.em, w.trashID)
	return pos, sprite, falling
}

func (w *testWorld) zones() *components.ZoneSetComponent {
	zones, _ := ecs.GetComponent[*components.ZoneSetComponent](w.em, w.zoneID)
	return zones
}

func (w *testWorld) inputSystem(input InputSource, seed int64) *UserInputSystem {
	return NewUserInputSystem(w.em, w.state, input, rand.New(rand.NewSource(seed)),
		config.DefaultGameConfig().Physics, 60, testWindowW, testWindowH)
}

// testAssets 与默认配置同样几何尺寸的纯色精灵图
func testAssets(t *testing.T) fstest.MapFS {
	t.Helper()
	encode := func(w, h int) []byte {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	return fstest.MapFS{
		"images/trash.png": {Data: encode(180, 180)},
		"images/bins.png":  {Data: encode(864, 188)},
		"images/bg.png":    {Data: encode(136, 77)},
		"images/odd.png":   {Data: encode(100, 60)},
	}
}

func defaultPhysics() config.PhysicsConfig {
	return config.DefaultGameConfig().Physics
}
