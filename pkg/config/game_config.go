package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath 未指定 --config 时尝试读取的本地配置文件
const LocalConfigPath = "configs/game.yaml"

// GameConfig 游戏配置
// 所有字段都有默认值（见 DefaultGameConfig），YAML 文件只需覆盖需要修改的字段
type GameConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Round       RoundConfig       `yaml:"round"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Assets      AssetConfig       `yaml:"assets"`
	Sheets      SheetConfig       `yaml:"sheets"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RoundConfig 一局游戏的时长与帧率
type RoundConfig struct {
	Seconds float64 `yaml:"seconds"` // 倒计时总时长（秒）
	TPS     int     `yaml:"tps"`     // 每秒逻辑更新次数
}

// PhysicsConfig 垃圾下落与玩家操作参数
type PhysicsConfig struct {
	SpawnY       float64 `yaml:"spawnY"`       // 重新生成时的纵坐标
	FallStep     float64 `yaml:"fallStep"`     // 速度倍率为 1 时每个 tick 下落的像素
	VelocityRate float64 `yaml:"velocityRate"` // 速度倍率每秒增长量
	VelocityCap  float64 `yaml:"velocityCap"`  // 速度倍率上限
	NudgeX       float64 `yaml:"nudgeX"`       // 左右方向键每个 tick 移动的像素
	NudgeDown    float64 `yaml:"nudgeDown"`    // 下方向键每个 tick 额外下落的像素
}

// AssetConfig 资源路径，均相对于 Root
type AssetConfig struct {
	Root         string `yaml:"root"`
	Background   string `yaml:"background"`
	Trash        string `yaml:"trash"`
	Bins         string `yaml:"bins"`
	Logo         string `yaml:"logo"`
	Font         string `yaml:"font"`         // 为空或文件不存在时使用内置 Go Regular 字体
	SoundCorrect string `yaml:"soundCorrect"` // 可选，为空则不播放
	SoundWrong   string `yaml:"soundWrong"`   // 可选，为空则不播放
}

// SheetConfig 精灵图几何参数
type SheetConfig struct {
	TrashTile      int   `yaml:"trashTile"`
	TrashScale     int   `yaml:"trashScale"`
	BinTileWidth   int   `yaml:"binTileWidth"`
	BinTileHeight  int   `yaml:"binTileHeight"`
	BinTileCount   int   `yaml:"binTileCount"` // 垃圾桶精灵图横向图块数（每个垃圾桶开/关两帧）
	BinClosedTiles []int `yaml:"binClosedTiles"`
}

// LeaderboardConfig 排行榜存储
type LeaderboardConfig struct {
	DBPath string `yaml:"dbPath"`
	Limit  int    `yaml:"limit"`
}

// DefaultGameConfig 返回默认配置（1360x765 窗口，三个垃圾桶）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Width:  1360,
			Height: 765,
			Title:  "Earth Day 2019",
		},
		Round: RoundConfig{
			Seconds: 120,
			TPS:     60,
		},
		Physics: PhysicsConfig{
			SpawnY:       50,
			FallStep:     10,
			VelocityRate: 0.05,
			VelocityCap:  5,
			NudgeX:       55,
			NudgeDown:    50,
		},
		Assets: AssetConfig{
			Root:         "assets",
			Background:   "images/Background.fw.png",
			Trash:        "images/TrashSprite.fw.png",
			Bins:         "images/BinSprite.fw.png",
			Logo:         "images/logo.fw.png",
			Font:         "fonts/nyala.ttf",
			SoundCorrect: "sounds/correct.ogg",
			SoundWrong:   "sounds/wrong.ogg",
		},
		Sheets: SheetConfig{
			TrashTile:      60,
			TrashScale:     2,
			BinTileWidth:   144,
			BinTileHeight:  188,
			BinTileCount:   6,
			BinClosedTiles: []int{0, 2, 4},
		},
		Leaderboard: LeaderboardConfig{
			DBPath: "~/.earthday/leaderboard.db",
			Limit:  10,
		},
	}
}

// LoadGameConfig 加载游戏配置
// 查找顺序: customPath -> ./configs/game.yaml -> 默认配置
//
// 显式指定的 customPath 读取或解析失败会返回错误；
// 本地配置文件不存在时静默回退到默认配置。
func LoadGameConfig(customPath string) (*GameConfig, error) {
	path := customPath
	if path == "" {
		if _, err := os.Stat(LocalConfigPath); err != nil {
			return DefaultGameConfig(), nil
		}
		path = LocalConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 在默认配置之上解析 YAML 数据并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的完整性和合法性
func (c *GameConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Round.Seconds <= 0 {
		return errors.New("round.seconds must be positive")
	}
	if c.Round.TPS <= 0 {
		return errors.New("round.tps must be positive")
	}
	if c.Physics.VelocityCap < 1 {
		return fmt.Errorf("physics.velocityCap must be at least 1, got %v", c.Physics.VelocityCap)
	}
	if c.Sheets.TrashTile <= 0 || c.Sheets.TrashScale <= 0 {
		return errors.New("sheets.trashTile and sheets.trashScale must be positive")
	}
	if c.Sheets.BinTileWidth <= 0 || c.Sheets.BinTileHeight <= 0 || c.Sheets.BinTileCount <= 0 {
		return errors.New("bin sheet geometry must be positive")
	}
	if len(c.Sheets.BinClosedTiles) != ZoneCount {
		return fmt.Errorf("sheets.binClosedTiles must list %d bins, got %d", ZoneCount, len(c.Sheets.BinClosedTiles))
	}
	for i, idx := range c.Sheets.BinClosedTiles {
		// 打开状态使用 idx+1，同样必须在图块范围内
		if idx < 0 || idx+1 >= c.Sheets.BinTileCount {
			return fmt.Errorf("sheets.binClosedTiles[%d]=%d out of range for %d tiles", i, idx, c.Sheets.BinTileCount)
		}
	}
	if c.Leaderboard.Limit <= 0 {
		c.Leaderboard.Limit = 10
	}
	return nil
}
