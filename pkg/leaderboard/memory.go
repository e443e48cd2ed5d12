package leaderboard

import (
	"sort"
	"time"
)

// MemoryBoard 仅保存在内存中的排行榜
// 数据库无法打开时作为降级方案使用，进程退出后记录丢失
type MemoryBoard struct {
	entries []Entry
	nextID  int64
	now     func() time.Time
}

// NewMemoryBoard 创建空的内存排行榜
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{nextID: 1, now: time.Now}
}

// Submit 记录一条成绩
func (b *MemoryBoard) Submit(user User, score Score) (int64, error) {
	id := b.nextID
	b.nextID++
	b.entries = append(b.entries, Entry{ID: id, User: user, Score: score, CreatedAt: b.now()})
	return id, nil
}

// Top 按排名返回前 limit 条记录
func (b *MemoryBoard) Top(limit int) ([]Entry, error) {
	sorted := make([]Entry, len(b.entries))
	copy(sorted, b.entries)
	sort.SliceStable(sorted, func(i, j int) bool { return ranksBefore(sorted[i], sorted[j]) })

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// ranksBefore 排名规则：正确率高者在前（无尝试的记录排最后），其次正确次数多者在前，再按提交先后
func ranksBefore(a, b Entry) bool {
	ra, okA := Ratio(a.Score.Right, a.Score.Wrong)
	rb, okB := Ratio(b.Score.Right, b.Score.Wrong)
	if okA != okB {
		return okA
	}
	if ra != rb {
		return ra > rb
	}
	if a.Score.Right != b.Score.Right {
		return a.Score.Right > b.Score.Right
	}
	return a.ID < b.ID
}

var _ Board = (*MemoryBoard)(nil)
