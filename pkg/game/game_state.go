package game

import (
	"math"

	"github.com/decker502/earthday/pkg/leaderboard"
)

// GameState 存储一局游戏的状态：计分、倒计时、暂停与结束标志、玩家信息
//
// 每次进入游戏都创建新的实例，切换到排行榜时丢弃，不存在全局单例。
// 倒计时以累计的 dt 计算：剩余时间 = TimeWhenPaused - Elapsed，
// 暂停时记录剩余时间，恢复时把 Elapsed 清零。
type GameState struct {
	Player leaderboard.User

	Right int // 分拣正确次数
	Wrong int // 分拣错误（含掉出屏幕）次数

	Paused bool
	Over   bool

	Remaining      float64 // 剩余秒数
	TimeWhenPaused float64 // 最近一次恢复时的剩余秒数
	Elapsed        float64 // 最近一次恢复以来经过的秒数
}

// NewGameState 创建一局时长为 seconds 秒的游戏状态
func NewGameState(player leaderboard.User, seconds float64) *GameState {
	return &GameState{
		Player:         player,
		Remaining:      seconds,
		TimeWhenPaused: seconds,
	}
}

// TogglePause 切换暂停状态
// 暂停时冻结剩余时间，恢复时从冻结值重新计时
func (gs *GameState) TogglePause() {
	if gs.Paused {
		gs.Paused = false
		gs.Elapsed = 0
		return
	}
	gs.Paused = true
	gs.TimeWhenPaused = gs.Remaining
}

// AdvanceClock 推进倒计时，剩余时间耗尽时标记游戏结束
// 暂停或已结束时不做任何事
func (gs *GameState) AdvanceClock(dt float64) {
	if gs.Paused || gs.Over {
		return
	}
	gs.Elapsed += dt
	gs.Remaining = gs.TimeWhenPaused - gs.Elapsed
	if gs.Remaining <= 0 {
		gs.Remaining = 0
		gs.Over = true
	}
}

// AddRight 记录一次正确分拣
func (gs *GameState) AddRight() {
	gs.Right++
}

// AddWrong 记录一次错误分拣
func (gs *GameState) AddWrong() {
	gs.Wrong++
}

// RemainingSeconds 返回用于 HUD 显示的剩余整秒数（舍去小数部分）
func (gs *GameState) RemainingSeconds() int {
	if gs.Remaining <= 0 {
		return 0
	}
	return int(math.Trunc(gs.Remaining))
}

// Result 生成交给排行榜的记录
func (gs *GameState) Result() (leaderboard.User, leaderboard.Score) {
	return gs.Player, leaderboard.NewScore(gs.Right, gs.Wrong)
}
