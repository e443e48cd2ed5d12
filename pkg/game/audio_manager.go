package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundLoader 按路径加载单次播放的音效（ResourceManager 实现了它）
type SoundLoader interface {
	LoadSoundEffect(path string) (*audio.Player, error)
}

// AudioManager 音频管理器
// 统一播放分拣正确/错误的提示音，并应用 SettingsManager 中的音量设置
//
// 音效文件是可选的：路径为空、文件缺失或没有音频设备时，PlaySound 只返回 false。
// 加载失败的路径会被记住，之后不再重试。
type AudioManager struct {
	loader   SoundLoader
	settings *SettingsManager // 可为 nil，此时按默认设置播放
	failed   map[string]bool
	logger   *log.Logger
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(loader SoundLoader, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		loader:   loader,
		settings: sm,
		failed:   make(map[string]bool),
		logger:   log.WithPrefix("AudioManager"),
	}
}

// PlaySound 从头播放一次音效，返回是否真正开始播放
func (am *AudioManager) PlaySound(path string) bool {
	if am == nil || am.loader == nil || path == "" || am.failed[path] {
		return false
	}

	settings := DefaultSettings()
	if am.settings != nil {
		settings = am.settings.GetSettings()
	}
	if !settings.SoundEnabled {
		return false
	}

	player, err := am.loader.LoadSoundEffect(path)
	if err != nil {
		am.failed[path] = true
		am.logger.Warn("sound effect unavailable", "path", path, "err", err)
		return false
	}

	player.SetVolume(settings.SoundVolume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind sound", "path", path, "err", err)
	}
	player.Play()
	return true
}
