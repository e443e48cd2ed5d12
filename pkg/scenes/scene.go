package scenes

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/decker502/earthday/pkg/systems"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Services 场景共享的依赖，由 App 在启动时创建一次
type Services struct {
	Config       *config.GameConfig
	Resources    *game.ResourceManager
	SceneManager *game.SceneManager
	Audio        *game.AudioManager // 可为 nil
	Board        leaderboard.Board
	Input        systems.InputSource
	Rand         *rand.Rand

	// Width/Height 当前窗口尺寸，为 0 时等于配置中的初始尺寸
	Width, Height int
}

// windowSize 返回配置中的初始窗口尺寸
func (s *Services) windowSize() (int, int) {
	return s.Config.Window.Width, s.Config.Window.Height
}

// currentSize 返回当前窗口尺寸
func (s *Services) currentSize() (int, int) {
	if s.Width > 0 && s.Height > 0 {
		return s.Width, s.Height
	}
	return s.windowSize()
}

func logFactoryError(scene string, err error) {
	log.WithPrefix("Scenes").Error("failed to create scene", "scene", scene, "err", err)
}
