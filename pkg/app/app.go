// Package app 提供游戏应用的核心包装器
//
// 该包把资源、设置、排行榜存储和场景管理器组装成一个 ebiten.Game，
// main 包只负责解析命令行和设置窗口。
package app

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/decker502/earthday/pkg/scenes"
	"github.com/decker502/earthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	Game *config.GameConfig

	// Assets 资源文件系统，为 nil 时使用 os.DirFS(Game.Assets.Root)
	Assets fs.FS
	// AudioContext 为 nil 时不播放音效
	AudioContext *audio.Context
	// Gdata 设置存储，为 nil 时设置只保存在内存中
	Gdata *gdata.Manager
	// Seed 随机数种子，0 表示使用当前时间
	Seed int64
	// Input 为 nil 时读取 ebiten 的键盘鼠标状态
	Input systems.InputSource
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	services     *scenes.Services
	settings     *game.SettingsManager
	board        leaderboard.Board
	store        *leaderboard.Store // 数据库打开失败时为 nil

	deltaTime     float64
	width, height int
	logger        *log.Logger
}

// NewApp 创建并初始化游戏应用，进入主菜单
func NewApp(cfg Config) (*App, error) {
	if cfg.Game == nil {
		cfg.Game = config.DefaultGameConfig()
	}
	gc := cfg.Game
	logger := log.WithPrefix("App")

	assets := cfg.Assets
	if assets == nil {
		assets = os.DirFS(filepath.Clean(gc.Assets.Root))
	}
	resourceManager := game.NewResourceManager(assets, cfg.AudioContext)

	settings := game.NewSettingsManager(cfg.Gdata)
	if err := settings.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", "err", err)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		deltaTime:    1.0 / float64(gc.Round.TPS),
		width:        gc.Window.Width,
		height:       gc.Window.Height,
		logger:       logger,
	}
	a.board, a.store = openBoard(gc.Leaderboard.DBPath, logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	input := cfg.Input
	if input == nil {
		input = systems.EbitenInput{}
	}

	services := &scenes.Services{
		Config:       gc,
		Resources:    resourceManager,
		SceneManager: a.sceneManager,
		Audio:        game.NewAudioManager(resourceManager, settings),
		Board:        a.board,
		Input:        input,
		Rand:         rand.New(rand.NewSource(seed)),
	}
	a.services = services
	a.sceneManager.SetSceneFactories(services.Factories())
	a.sceneManager.EnterMenu()
	if a.sceneManager.GetCurrentScene() == nil {
		a.Close()
		return nil, errors.New("failed to create the main menu")
	}

	logger.Info("game initialized", "window", gc.Window.Width, "tps", gc.Round.TPS, "seed", seed)
	return a, nil
}

// openBoard 打开 SQLite 排行榜，失败时降级为内存排行榜
func openBoard(dbPath string, logger *log.Logger) (leaderboard.Board, *leaderboard.Store) {
	store, err := leaderboard.Open(dbPath)
	if err != nil {
		logger.Warn("leaderboard database unavailable, scores will not be kept", "path", dbPath, "err", err)
		return leaderboard.NewMemoryBoard(), nil
	}
	return store, store
}

// Update 更新游戏逻辑
// 每个 tick 调用一次；请求退出后返回 ebiten.Termination
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	return a.step()
}

func (a *App) step() error {
	if a.sceneManager.QuitRequested() {
		return ebiten.Termination
	}
	a.sceneManager.Update(a.deltaTime)
	if a.sceneManager.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// toggleFullscreen 切换全屏并保存到设置
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save settings", "err", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸；尺寸变化时通知当前场景重新布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.resize(outsideWidth, outsideHeight)
	return a.width, a.height
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 || (width == a.width && height == a.height) {
		return
	}
	if err := a.sceneManager.Resize(width, height); err != nil {
		a.logger.Error("failed to resize scene", "width", width, "height", height, "err", err)
	}
	a.width, a.height = width, height
	a.services.Width, a.services.Height = width, height
}

// Settings 返回设置管理器（main 用它恢复全屏状态）
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 关闭排行榜数据库
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
