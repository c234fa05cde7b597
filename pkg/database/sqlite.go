package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// sqliteStore 是 Ledger 接口的 SQLite 实现
type sqliteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

const createTablesSQL = `
	CREATE TABLE IF NOT EXISTS downloads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lyric_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		path TEXT NOT NULL,
		downloaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_downloads_lyric_id ON downloads (lyric_id);
	CREATE TABLE IF NOT EXISTS imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		lyric_id INTEGER NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

// NewSQLiteStore 初始化 SQLite 数据库并返回 Ledger 接口实例
func NewSQLiteStore(dataSourceName string, logger *zap.Logger) (Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// 尝试创建表，如果不存在
	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close() // 创建表失败也要关闭连接
		return nil, fmt.Errorf("failed to create ledger tables: %w", err)
	}
	logger.Info("SQLite database initialized", zap.String("dsn", dataSourceName))
	return &sqliteStore{db: db, logger: logger}, nil
}

// Close 关闭数据库连接
func (s *sqliteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.logger.Debug("SQLite database connection closed")
		return err
	}
	return nil
}

// RecordDownload 记录一次完成的下载
func (s *sqliteStore) RecordDownload(lyricID int64, filename, path string) error {
	_, err := s.db.Exec("INSERT INTO downloads (lyric_id, filename, path, downloaded_at) VALUES (?, ?, ?, ?)",
		lyricID, filename, path, time.Now().UTC())
	if err != nil {
		s.logger.Error("Failed to record download", zap.Int64("lyric_id", lyricID), zap.Error(err))
		return fmt.Errorf("failed to record download of lyric %d: %w", lyricID, err)
	}
	return nil
}

// LastDownload 返回某条歌词最近一次的下载记录
func (s *sqliteStore) LastDownload(lyricID int64) (*Download, error) {
	d := Download{LyricID: lyricID}
	err := s.db.QueryRow(
		"SELECT filename, path, downloaded_at FROM downloads WHERE lyric_id = ? ORDER BY id DESC LIMIT 1",
		lyricID,
	).Scan(&d.Filename, &d.Path, &d.DownloadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up download of lyric %d: %w", lyricID, err)
	}
	return &d, nil
}

// MarkImported 将投稿文件标记为已导入
func (s *sqliteStore) MarkImported(path string, lyricID int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO imports (path, lyric_id, imported_at) VALUES (?, ?, ?)",
		path, lyricID, time.Now().UTC())
	if err != nil {
		s.logger.Error("Failed to mark file imported", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to mark %s imported: %w", path, err)
	}
	s.logger.Info("File marked as imported", zap.String("path", path), zap.Int64("lyric_id", lyricID))
	return nil
}

// IsImported 检查投稿文件是否已导入
func (s *sqliteStore) IsImported(path string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM imports WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check imported status for %s: %w", path, err)
	}
	return count > 0, nil
}
