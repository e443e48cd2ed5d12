package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactories 场景工厂函数集合
// 场景包依赖 game 包，由 app 在启动时注入工厂，避免循环依赖
type SceneFactories struct {
	Menu        func() Scene
	Game        func(player leaderboard.User) (Scene, error)
	Leaderboard func(user leaderboard.User, score leaderboard.Score) Scene
}

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// Scenes request transitions through EnterMenu, EnterGame, EnterLeaderboard and
// RequestQuit; the new scene becomes active immediately.
type SceneManager struct {
	currentScene  Scene
	factories     SceneFactories
	quitRequested bool
	logger        *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or EnterMenu to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		logger: log.WithPrefix("SceneManager"),
	}
}

// SetSceneFactories 设置场景工厂函数
func (sm *SceneManager) SetSceneFactories(factories SceneFactories) {
	sm.factories = factories
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// EnterMenu 切换到主菜单
func (sm *SceneManager) EnterMenu() {
	if sm.factories.Menu == nil {
		sm.logger.Error("menu factory not set")
		return
	}
	sm.logger.Debug("entering menu")
	sm.SwitchTo(sm.factories.Menu())
}

// EnterGame 以指定玩家开始一局新游戏
func (sm *SceneManager) EnterGame(player leaderboard.User) error {
	if sm.factories.Game == nil {
		return fmt.Errorf("game scene factory not set")
	}

	scene, err := sm.factories.Game(player)
	if err != nil {
		return fmt.Errorf("failed to create game scene for %s: %w", player.Name, err)
	}

	sm.logger.Info("game started", "name", player.Name, "gender", player.Gender)
	sm.SwitchTo(scene)
	return nil
}

// EnterLeaderboard 把一局游戏的结果交给排行榜场景
func (sm *SceneManager) EnterLeaderboard(user leaderboard.User, score leaderboard.Score) {
	sm.logger.Info("round over",
		"name", user.Name, "right", score.Right, "wrong", score.Wrong, "percentage", score.Percentage)

	if sm.factories.Leaderboard == nil {
		sm.logger.Warn("leaderboard factory not set, returning to menu")
		sm.EnterMenu()
		return
	}
	scene := sm.factories.Leaderboard(user, score)
	if scene == nil {
		sm.EnterMenu()
		return
	}
	sm.SwitchTo(scene)
}

// RequestQuit 请求退出游戏，App 在下一次 Update 时结束主循环
func (sm *SceneManager) RequestQuit() {
	sm.logger.Debug("quit requested")
	sm.quitRequested = true
}

// QuitRequested 报告是否已请求退出
func (sm *SceneManager) QuitRequested() bool {
	return sm.quitRequested
}

// Resize 通知当前场景窗口尺寸已变化（仅当场景实现了 Resizable）
func (sm *SceneManager) Resize(width, height int) error {
	if r, ok := sm.currentScene.(Resizable); ok {
		return r.HandleResize(width, height)
	}
	return nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
