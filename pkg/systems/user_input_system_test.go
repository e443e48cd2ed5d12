package systems

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestFallPastBottomCountsWrongAndRespawns(t *testing.T) {
	w := newTestWorld(t)
	sys := w.inputSystem(newFakeInput(), 1)

	pos, sprite, falling := w.trash()
	pos.Y = testWindowH - 1

	sys.Update(tick)
	if falling.Falling {
		t.Fatal("trash past the bottom edge should stop falling")
	}
	if w.state.Wrong != 1 {
		t.Fatalf("Wrong = %d, want 1", w.state.Wrong)
	}

	sys.Update(tick)
	if !falling.Falling {
		t.Error("trash should respawn on the next tick")
	}
	if pos.Y != 50 {
		t.Errorf("respawn y = %v, want 50", pos.Y)
	}
	if sprite.Index < 0 || sprite.Index > 8 {
		t.Errorf("respawn index = %d, want [0,8]", sprite.Index)
	}
	if pos.X < 0 || pos.X > testWindowW-120 {
		t.Errorf("respawn x = %v out of [0, %v]", pos.X, testWindowW-120)
	}
}

func TestRespawnRanges(t *testing.T) {
	w := newTestWorld(t)
	sys := w.inputSystem(newFakeInput(), 42)
	pos, sprite, falling := w.trash()

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		falling.Falling = false
		sys.Update(tick)

		if sprite.Index < 0 || sprite.Index > 8 {
			t.Fatalf("index %d out of range", sprite.Index)
		}
		if pos.X < 0 || pos.X > testWindowW-120 || pos.X != math.Trunc(pos.X) {
			t.Fatalf("x = %v, want an integer in [0, %v]", pos.X, testWindowW-120)
		}
		seen[sprite.Index] = true
	}
	if len(seen) != 9 {
		t.Errorf("only %d of 9 trash kinds were spawned", len(seen))
	}
}

func TestFallSpeed(t *testing.T) {
	w := newTestWorld(t)
	sys := w.inputSystem(newFakeInput(), 1)
	pos, _, _ := w.trash()

	startY := pos.Y
	sys.Update(tick)

	// 倍率 1 + 0.05/60，每个 tick 下落 10 × 倍率
	want := startY + 10*(1+tick*0.05)
	if math.Abs(pos.Y-want) > 1e-9 {
		t.Errorf("y after one tick = %v, want %v", pos.Y, want)
	}
}

func TestMultiplierMonotoneAndCapped(t *testing.T) {
	w := newTestWorld(t)
	sys := NewUserInputSystem(w.em, w.state, newFakeInput(), nil,
		defaultPhysics(), 60, testWindowW, 1e12)

	prev := sys.Multiplier()
	if prev != 1 {
		t.Fatalf("initial multiplier = %v, want 1", prev)
	}

	for i := 0; i < 60*100; i++ {
		sys.Update(tick)
		m := sys.Multiplier()
		if m < prev {
			t.Fatalf("multiplier decreased at tick %d: %v -> %v", i, prev, m)
		}
		if m > 5 {
			t.Fatalf("multiplier %v exceeds cap", m)
		}
		prev = m
	}

	// 80 秒后 1 + 80×0.05 = 5，之后保持上限
	if prev != 5 {
		t.Errorf("multiplier after 100s = %v, want 5", prev)
	}
}

func TestMultiplierRate(t *testing.T) {
	w := newTestWorld(t)
	sys := NewUserInputSystem(w.em, w.state, newFakeInput(), nil,
		defaultPhysics(), 60, testWindowW, 1e12)

	for i := 0; i < 600; i++ {
		sys.Update(tick)
	}
	if got := sys.Multiplier(); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("multiplier after 10s = %v, want 1.5", got)
	}
}

func TestNudges(t *testing.T) {
	tests := []struct {
		name   string
		keys   []ebiten.Key
		wantDX float64
		wantDY float64
	}{
		{"左移", []ebiten.Key{ebiten.KeyLeft}, -55, 0},
		{"右移", []ebiten.Key{ebiten.KeyRight}, 55, 0},
		{"加速下落", []ebiten.Key{ebiten.KeyDown}, 0, 50},
		{"左右同时按下时左优先", []ebiten.Key{ebiten.KeyLeft, ebiten.KeyRight}, -55, 0},
		{"右和下同时按下时右优先", []ebiten.Key{ebiten.KeyRight, ebiten.KeyDown}, 55, 0},
		{"无按键", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			input := newFakeInput()
			for _, k := range tt.keys {
				input.keys[k] = true
			}
			sys := w.inputSystem(input, 1)

			pos, _, _ := w.trash()
			startX, startY := pos.X, pos.Y
			sys.Update(tick)

			fall := 10 * (1 + tick*0.05)
			if dx := pos.X - startX; dx != tt.wantDX {
				t.Errorf("dx = %v, want %v", dx, tt.wantDX)
			}
			if dy := pos.Y - startY - fall; math.Abs(dy-tt.wantDY) > 1e-9 {
				t.Errorf("extra dy = %v, want %v", dy, tt.wantDY)
			}
		})
	}
}

func TestClampX(t *testing.T) {
	maxX := testWindowW - 120

	tests := []struct {
		name  string
		start float64
		key   ebiten.Key
		want  float64
	}{
		{"右边界", maxX - 10, ebiten.KeyRight, maxX},
		{"左边界", 10, ebiten.KeyLeft, 0},
		{"超出右边界的位置被拉回", testWindowW + 300, ebiten.KeyDown, maxX},
		{"负坐标被拉回", -40, ebiten.KeyDown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			input := newFakeInput()
			input.keys[tt.key] = true
			sys := w.inputSystem(input, 1)

			pos, _, _ := w.trash()
			pos.X = tt.start
			sys.Update(tick)

			if pos.X != tt.want {
				t.Errorf("x = %v, want %v", pos.X, tt.want)
			}
		})
	}
}

func TestPauseClickToggles(t *testing.T) {
	w := newTestWorld(t)
	input := newFakeInput()
	sys := w.inputSystem(input, 1)

	input.click(1320, 30)
	sys.Update(tick)
	if !w.state.Paused {
		t.Fatal("click inside the pause control should pause")
	}

	input.clicked = false
	input.keys[ebiten.KeyLeft] = true
	pos, _, _ := w.trash()
	x, y := pos.X, pos.Y
	remaining := w.state.Remaining
	multiplier := sys.Multiplier()

	for i := 0; i < 30; i++ {
		sys.Update(tick)
	}
	if pos.X != x || pos.Y != y {
		t.Errorf("trash moved while paused: (%v,%v) -> (%v,%v)", x, y, pos.X, pos.Y)
	}
	if w.state.Remaining != remaining {
		t.Errorf("countdown advanced while paused: %v -> %v", remaining, w.state.Remaining)
	}
	if sys.Multiplier() != multiplier {
		t.Error("multiplier changed while paused")
	}

	input.keys[ebiten.KeyLeft] = false
	input.click(1320, 30)
	sys.Update(tick)
	if w.state.Paused {
		t.Error("second click should resume")
	}
}

func TestPauseClickOutsideOrOnEdge(t *testing.T) {
	points := []struct {
		name string
		x, y int
	}{
		{"左边缘", 1310, 30},
		{"上边缘", 1320, 10},
		{"右侧外部", 1345, 30},
		{"远处", 100, 100},
	}

	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			w := newTestWorld(t)
			input := newFakeInput()
			sys := w.inputSystem(input, 1)

			input.click(p.x, p.y)
			sys.Update(tick)
			if w.state.Paused {
				t.Errorf("click at (%d,%d) should not pause", p.x, p.y)
			}
		})
	}
}

func TestCountdownEndsRound(t *testing.T) {
	w := newTestWorld(t)
	w.state.Remaining, w.state.TimeWhenPaused = 0.05, 0.05
	sys := w.inputSystem(newFakeInput(), 1)

	sys.Update(0.025)
	if w.state.Over {
		t.Fatal("round ended early")
	}
	sys.Update(0.025)
	if !w.state.Over {
		t.Errorf("remaining reached 0 (%v), round should be over", w.state.Remaining)
	}
}
