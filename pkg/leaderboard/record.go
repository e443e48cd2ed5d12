// Package leaderboard 接收一局游戏结束时的成绩交接，并负责持久化和查询排行榜
//
// 交接内容是两个按值传递的记录：玩家 User{Name, Gender} 与成绩 Score{Right, Wrong, Percentage}。
package leaderboard

import (
	"strconv"
	"time"
)

// NotAvailable 没有任何分拣尝试（right+wrong=0）时的正确率文本
const NotAvailable = "N/A"

// User 玩家信息
type User struct {
	Name   string
	Gender string
}

// Score 一局游戏的成绩
type Score struct {
	Right      int
	Wrong      int
	Percentage string // 两位小数的正确率文本，如 "66.67"；无尝试时为 NotAvailable
}

// NewScore 根据正确/错误次数生成成绩，正确率 = right/(right+wrong)*100，保留两位小数
func NewScore(right, wrong int) Score {
	return Score{
		Right:      right,
		Wrong:      wrong,
		Percentage: FormatPercentage(right, wrong),
	}
}

// PercentLabel 用于显示的正确率，如 "66.67%"；无尝试时为 "N/A"
func (s Score) PercentLabel() string {
	if s.Percentage == NotAvailable {
		return s.Percentage
	}
	return s.Percentage + "%"
}

// FormatPercentage 计算并格式化正确率
func FormatPercentage(right, wrong int) string {
	ratio, ok := Ratio(right, wrong)
	if !ok {
		return NotAvailable
	}
	return strconv.FormatFloat(ratio*100, 'f', 2, 64)
}

// Ratio 返回 right/(right+wrong)；没有尝试时 ok 为 false
func Ratio(right, wrong int) (ratio float64, ok bool) {
	total := right + wrong
	if total <= 0 {
		return 0, false
	}
	return float64(right) / float64(total), true
}

// Entry 排行榜中的一条记录
type Entry struct {
	ID        int64
	User      User
	Score     Score
	CreatedAt time.Time
}

// Board 排行榜协作者：接收交接记录并返回排名靠前的记录
type Board interface {
	Submit(user User, score Score) (int64, error)
	Top(limit int) ([]Entry, error)
}
