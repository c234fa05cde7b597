package database

import "time"

// Download 是一次完成的 PDF 下载
type Download struct {
	LyricID      int64
	Filename     string
	Path         string
	DownloadedAt time.Time
}

// Ledger 定义下载记录和导入状态的存储接口
type Ledger interface {
	RecordDownload(lyricID int64, filename, path string) error // 记录一次下载
	LastDownload(lyricID int64) (*Download, error)             // 最近一次下载，没有时返回 nil
	MarkImported(path string, lyricID int64) error             // 将投稿文件标记为已导入
	IsImported(path string) (bool, error)                      // 检查投稿文件是否已导入
	Close() error                                              // 关闭数据库连接
}
