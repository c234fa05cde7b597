package saver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/util"
)

// Saver 接收下载的文件内容并以给定文件名保存
type Saver interface {
	Save(name string, r io.Reader) (string, error)
}

// Dir 把文件写入指定目录
type Dir struct {
	root   string
	logger *zap.Logger
}

// NewDir 创建一个新的 Dir 实例
func NewDir(root string, logger *zap.Logger) *Dir {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dir{root: root, logger: logger}
}

// Root 返回保存目录
func (d *Dir) Root() string { return d.root }

// Save 写入文件并返回完整路径。文件名先经过清理，不会逃出根目录
func (d *Dir) Save(name string, r io.Reader) (string, error) {
	clean := util.SanitizeFileName(filepath.Base(name))
	if clean == "" || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", d.root, err)
	}

	target := filepath.Join(d.root, clean)
	tmp, err := os.CreateTemp(d.root, "."+clean+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file in %s: %w", d.root, err)
	}
	n, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", fmt.Errorf("failed to write %s: %w", clean, copyErr)
		}
		return "", fmt.Errorf("failed to close %s: %w", clean, closeErr)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move %s into place: %w", clean, err)
	}
	d.logger.Info("File saved", zap.String("path", target), zap.Int64("bytes", n))
	return target, nil
}
