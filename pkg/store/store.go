// Package store 持有一个视图会话内从服务器取回的完整歌词列表。
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/lyric"
)

var (
	// ErrStale 表示加载结果到达时已有更新的加载开始，结果被丢弃
	ErrStale = errors.New("store: stale load result discarded")
	// ErrClosed 表示视图已卸载
	ErrClosed = errors.New("store: closed")
)

// Loader 是 Store 加载数据所需的最小接口
type Loader interface {
	FetchAll(ctx context.Context) ([]lyric.Record, error)
}

// Store 只支持整体替换，不做局部修改
type Store struct {
	mu         sync.RWMutex
	records    []lyric.Record
	loaded     bool
	closed     bool
	generation uint64
	logger     *zap.Logger
}

// New 创建一个空的 Store
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{records: []lyric.Record{}, logger: logger}
}

// Load 拉取全部记录并替换当前列表。失败时列表保持不变；
// 如果期间开始了新的 Load 或 Store 已关闭，结果被丢弃
func (s *Store) Load(ctx context.Context, loader Loader) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.generation++
	ticket := s.generation
	s.mu.Unlock()

	records, err := loader.FetchAll(ctx)
	if err != nil {
		s.logger.Warn("Load failed, keeping current records", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("Store closed while loading, discarding result", zap.Int("count", len(records)))
		return ErrClosed
	}
	if ticket != s.generation {
		s.logger.Debug("Newer load in progress, discarding result", zap.Uint64("ticket", ticket))
		return ErrStale
	}
	s.replaceLocked(records)
	s.logger.Info("Records loaded", zap.Int("count", len(records)))
	return nil
}

// Replace 直接替换整个列表
func (s *Store) Replace(records []lyric.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.replaceLocked(records)
}

// Append 在已加载的列表末尾追加记录，不影响正在进行的 Load。
// 尚未加载时返回 false，之后的 Load 会从服务器取回这些记录
func (s *Store) Append(records ...lyric.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || s.closed {
		return false
	}
	s.records = append(s.records, records...)
	return true
}

func (s *Store) replaceLocked(records []lyric.Record) {
	cp := make([]lyric.Record, len(records))
	copy(cp, records)
	s.records = cp
	s.loaded = true
}

// Records 返回当前列表的副本
func (s *Store) Records() []lyric.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]lyric.Record, len(s.records))
	copy(cp, s.records)
	return cp
}

// Get 按 id 查找记录
func (s *Store) Get(id int64) (lyric.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return lyric.Record{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded 报告是否至少成功加载过一次
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Close 标记视图已卸载，之后到达的加载结果都会被丢弃
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
