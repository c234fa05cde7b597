package api

import (
	"context"

	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/saver"
)

const (
	// DefaultBaseURL 是歌词集合资源的默认地址
	DefaultBaseURL = "https://lyricus-api.onrender.com/api/lyrics"

	downloadPath = "/download"
)

// Fetcher 定义与远端歌词 API 交互的接口
type Fetcher interface {
	FetchAll(ctx context.Context) ([]lyric.Record, error)
	FetchByID(ctx context.Context, id int64) (lyric.Record, error)
	Create(ctx context.Context, req lyric.NewRequest) (lyric.Record, error)
	Download(ctx context.Context, id int64, dst saver.Saver) (string, error)
}
