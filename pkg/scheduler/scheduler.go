package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/database"
	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/notify"
	"github.com/yleoer/lyricus/pkg/scanner"
	"github.com/yleoer/lyricus/pkg/util"
)

// Creator 是导入时提交歌词所需的接口
type Creator interface {
	Create(ctx context.Context, req lyric.NewRequest) (lyric.Record, error)
}

// Options 控制防抖和文件稳定性检查
type Options struct {
	CheckInterval time.Duration // 触发后延迟多久扫描，以及稳定性检查的轮询间隔
	QuietDuration time.Duration // 文件在多长时间内没有变化才算稳定
	MaxWait       time.Duration // 最长等待文件稳定的时间
}

// ImportScheduler 负责调度投稿文件的解析和提交
type ImportScheduler struct {
	ctx               context.Context
	opts              Options
	ledger            database.Ledger
	scanner           *scanner.LyricScanner
	creator           Creator
	notifier          notify.Notifier
	logger            *zap.Logger
	importMutex       sync.Mutex // 串行处理文件
	pendingScans      map[string]*time.Timer
	pendingScansMutex sync.Mutex // 保护 pendingScans map
	wg                sync.WaitGroup
}

// NewImportScheduler 创建一个新的 ImportScheduler 实例，ctx 取消后不再提交
func NewImportScheduler(
	ctx context.Context,
	opts Options,
	ledger database.Ledger,
	lyricScanner *scanner.LyricScanner,
	creator Creator,
	notifier notify.Notifier,
	logger *zap.Logger,
) *ImportScheduler {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = time.Minute
	}
	return &ImportScheduler{
		ctx:          ctx,
		opts:         opts,
		ledger:       ledger,
		scanner:      lyricScanner,
		creator:      creator,
		notifier:     notifier,
		logger:       logger,
		pendingScans: make(map[string]*time.Timer),
	}
}

// InitialScan 对投稿目录进行初始扫描
func (ts *ImportScheduler) InitialScan(dir string) {
	ts.logger.Info("Performing initial scan for unimported submissions", zap.String("dir", dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		ts.logger.Error("Error reading import directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !util.IsLyricSubmissionFile(path) {
			continue
		}
		imported, err := ts.ledger.IsImported(path)
		if err != nil {
			ts.logger.Error("Error checking imported status", zap.String("path", path), zap.Error(err))
		}
		if imported {
			ts.logger.Debug("Submission already imported, skipping", zap.String("path", path))
			continue
		}
		ts.TriggerScan(path)
	}
	ts.logger.Info("Initial scan completed")
}

// TriggerScan 将一个文件添加到延迟处理队列，重复触发会重置计时器
func (ts *ImportScheduler) TriggerScan(path string) {
	ts.pendingScansMutex.Lock()
	defer ts.pendingScansMutex.Unlock()
	if timer, ok := ts.pendingScans[path]; ok {
		if timer.Stop() {
			ts.wg.Done()
		}
	}
	ts.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(ts.opts.CheckInterval, func() {
		defer ts.wg.Done()
		ts.pendingScansMutex.Lock()
		if ts.pendingScans[path] == timer {
			delete(ts.pendingScans, path)
		}
		ts.pendingScansMutex.Unlock()
		ts.performImport(path)
	})
	ts.pendingScans[path] = timer
	ts.logger.Debug("Scheduled import", zap.String("path", path), zap.Duration("delay", ts.opts.CheckInterval))
}

// Wait 等待所有已调度的任务结束
func (ts *ImportScheduler) Wait() {
	ts.wg.Wait()
}

// Pending 返回等待中的文件数
func (ts *ImportScheduler) Pending() int {
	ts.pendingScansMutex.Lock()
	defer ts.pendingScansMutex.Unlock()
	return len(ts.pendingScans)
}

// performImport 执行实际的解析和提交
func (ts *ImportScheduler) performImport(path string) {
	ts.importMutex.Lock()
	defer ts.importMutex.Unlock()

	if ts.ctx.Err() != nil {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		ts.logger.Debug("Submission removed before import", zap.String("path", path))
		return
	}
	if !ts.waitForFileStability(path) {
		ts.logger.Warn("Submission still changing, rescheduling", zap.String("path", path))
		ts.TriggerScan(path)
		return
	}
	imported, err := ts.ledger.IsImported(path)
	if err != nil {
		ts.logger.Error("Error checking imported status before import", zap.String("path", path), zap.Error(err))
	}
	if imported {
		return
	}

	req, err := ts.scanner.ScanFile(path)
	if err != nil {
		ts.logger.Error("Error scanning submission", zap.String("path", path), zap.Error(err))
		return
	}
	if err := req.Validate(); err != nil {
		ts.logger.Warn("Submission is missing required fields", zap.String("path", path), zap.Error(err))
		ts.notifier.Notify(notify.Failure("Please fill in all required fields: " + filepath.Base(path)))
		return
	}

	created, err := ts.creator.Create(ts.ctx, req)
	if err != nil {
		ts.logger.Error("Error submitting lyrics", zap.String("path", path), zap.Error(err))
		ts.notifier.Notify(notify.Failure("Failed to add lyrics: " + filepath.Base(path)))
		return
	}
	if err := ts.ledger.MarkImported(path, created.ID); err != nil {
		ts.logger.Error("Error marking submission imported", zap.String("path", path), zap.Error(err))
	}
	ts.logger.Info("Submission imported",
		zap.String("path", path), zap.Int64("id", created.ID), zap.String("song", created.SongName))
	ts.notifier.Notify(notify.Success("Lyrics added successfully!"))
}

// waitForFileStability 检查文件大小和修改时间在 QuietDuration 内保持不变
func (ts *ImportScheduler) waitForFileStability(path string) bool {
	var last fileInfo
	var quietSince time.Time
	start := time.Now()
	for time.Since(start) < ts.opts.MaxWait {
		info, err := os.Stat(path)
		if err != nil {
			ts.logger.Debug("Stat failed during stability check", zap.String("path", path), zap.Error(err))
			return false
		}
		now := time.Now()
		current := fileInfo{Size: info.Size(), ModTime: info.ModTime()}
		if quietSince.IsZero() || current.Size != last.Size || !current.ModTime.Equal(last.ModTime) {
			last = current
			quietSince = now
		}
		if now.Sub(quietSince) >= ts.opts.QuietDuration {
			return true
		}
		select {
		case <-ts.ctx.Done():
			return false
		case <-time.After(ts.opts.CheckInterval):
		}
	}
	return false
}

// fileInfo struct 用于存储文件的关键信息
type fileInfo struct {
	Size    int64
	ModTime time.Time
}
