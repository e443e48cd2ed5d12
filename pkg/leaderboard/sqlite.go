package leaderboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store 基于 SQLite 的排行榜存储
type Store struct {
	db *sql.DB
}

// Open 打开（或创建）指定路径的排行榜数据库，必要时创建父目录并执行迁移
// 路径以 ~ 开头时展开为用户主目录；":memory:" 打开内存数据库
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}
	// 内存数据库每个连接各自独立，限制为单连接
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}
	return store, nil
}

// migrate 创建表结构
// ratio 为 NULL 表示没有任何分拣尝试
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			right_count INTEGER NOT NULL,
			wrong_count INTEGER NOT NULL,
			percentage TEXT NOT NULL,
			ratio REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_entries_rank ON entries(ratio DESC, right_count DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Submit 保存一局游戏的交接记录，返回新记录的ID
func (s *Store) Submit(user User, score Score) (int64, error) {
	var ratio sql.NullFloat64
	if r, ok := Ratio(score.Right, score.Wrong); ok {
		ratio = sql.NullFloat64{Float64: r, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO entries (name, gender, right_count, wrong_count, percentage, ratio)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name, user.Gender, score.Right, score.Wrong, score.Percentage, ratio,
	)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot save entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Top 返回排名前 limit 的记录
// 排名规则与 MemoryBoard 一致：正确率降序（无尝试的排最后）、正确次数降序、提交先后
func (s *Store) Top(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, gender, right_count, wrong_count, percentage, created_at
		 FROM entries
		 ORDER BY ratio IS NULL, ratio DESC, right_count DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.User.Name, &e.User.Gender,
			&e.Score.Right, &e.Score.Wrong, &e.Score.Percentage, &createdAt); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}
	return entries, nil
}

// Count 返回记录总数
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("leaderboard: cannot count entries: %w", err)
	}
	return n, nil
}

// parseTime 兼容驱动返回 time.Time 或字符串两种情况
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var _ Board = (*Store)(nil)
