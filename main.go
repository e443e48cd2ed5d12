// earthday 地球日垃圾分类小游戏
//
// 用法:
//
//	earthday                 启动游戏窗口
//	earthday scores          在终端打印排行榜
//
// 全局参数:
//
//	--config <path>   游戏配置 YAML（默认 ./configs/game.yaml，不存在时使用内置配置）
//	--db <path>       排行榜数据库路径
//	--verbose         输出调试日志
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/app"
	"github.com/decker502/earthday/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

// sampleRate 音频上下文采样率
const sampleRate = 48000

var (
	flagConfig     string
	flagDBPath     string
	flagVerbose    bool
	flagAssets     string
	flagSeed       int64
	flagFullscreen bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "earthday",
	Short: "Earth Day - sort the falling trash into the right bin",
	Long: `Earth Day is a small arcade game: trash falls from the top of the
window and you steer it into the matching recycling bin before time runs out.

Controls:
  Left/Right  - Move the falling item
  Down        - Drop faster
  Click ||    - Pause / resume
  F11         - Toggle fullscreen

Examples:
  earthday
  earthday --fullscreen
  earthday --config ./configs/game.yaml --seed 7
  earthday scores`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to leaderboard database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "Asset root directory (overrides config)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen mode")

	rootCmd.AddCommand(scoresCmd)
}

// setupLogging 设置默认日志级别，必须在创建各组件的前缀日志器之前调用
func setupLogging(verbose bool) {
	log.SetReportTimestamp(true)
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}

// loadConfig 读取配置文件并应用命令行覆盖
func loadConfig() (*config.GameConfig, error) {
	cfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagAssets != "" {
		cfg.Assets.Root = flagAssets
	}
	if flagDBPath != "" {
		cfg.Leaderboard.DBPath = flagDBPath
	}
	return cfg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	setupLogging(flagVerbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 设置存储不可用时以降级模式运行，设置不会保存
	gdataManager, err := gdata.Open(gdata.Config{AppName: "earthday"})
	if err != nil {
		log.Warn("settings storage unavailable", "err", err)
		gdataManager = nil
	}

	a, err := app.NewApp(app.Config{
		Game:         cfg,
		AudioContext: audio.NewContext(sampleRate),
		Gdata:        gdataManager,
		Seed:         flagSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	defer a.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Round.TPS)
	ebiten.SetFullscreen(flagFullscreen || a.Settings().GetSettings().Fullscreen)

	return ebiten.RunGame(a)
}
