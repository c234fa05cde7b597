// Package browse 组合 API 客户端、记录存储、查询和分组，
// 对应一个页面视图的完整生命周期。
package browse

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/api"
	"github.com/yleoer/lyricus/pkg/database"
	"github.com/yleoer/lyricus/pkg/group"
	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/notify"
	"github.com/yleoer/lyricus/pkg/query"
	"github.com/yleoer/lyricus/pkg/saver"
	"github.com/yleoer/lyricus/pkg/store"
)

const (
	msgFetchFailed    = "Failed to fetch lyrics"
	MsgTrendingFailed = "Failed to fetch trending data"
	msgDownloadOK     = "Lyric downloaded successfully!"
	msgDownloadFailed = "Failed to download lyric"
	msgMissingFields  = "Please fill in all required fields"
	msgCreateOK       = "Lyrics added successfully!"
	msgCreateFailed   = "Failed to add lyrics"
)

// Trending 是热门页面的三个区块
type Trending struct {
	Trending       []lyric.Record
	RecentHits     []lyric.Record
	PopularArtists []group.Artist
}

// View 是一个视图会话，独占自己的 Store
type View struct {
	fetcher  api.Fetcher
	store    *store.Store
	notifier notify.Notifier
	saver    saver.Saver
	ledger   database.Ledger
	ranker   query.Ranker
	logger   *zap.Logger

	fetchFailure string
}

// Option 配置 View
type Option func(*View)

// WithLedger 在下载成功后写入下载记录
func WithLedger(l database.Ledger) Option { return func(v *View) { v.ledger = l } }

// WithRanker 替换热门区块使用的排名方式
func WithRanker(r query.Ranker) Option { return func(v *View) { v.ranker = r } }

// WithFetchFailure 替换加载失败时的提示文字，例如热门页使用 "Failed to fetch trending data"
func WithFetchFailure(msg string) Option { return func(v *View) { v.fetchFailure = msg } }

// WithSaver 设置下载文件的保存方式
func WithSaver(s saver.Saver) Option { return func(v *View) { v.saver = s } }

// NewView 创建一个新的 View 实例
func NewView(fetcher api.Fetcher, notifier notify.Notifier, logger *zap.Logger, opts ...Option) *View {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &View{
		fetcher:  fetcher,
		store:    store.New(logger),
		notifier: notifier,
		ranker:   query.RecencyRanker{},
		logger:   logger,

		fetchFailure: msgFetchFailed,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount 拉取全部歌词，失败时发出错误提示
func (v *View) Mount(ctx context.Context) error {
	err := v.store.Load(ctx, v.fetcher)
	if errors.Is(err, store.ErrStale) || errors.Is(err, store.ErrClosed) {
		return nil
	}
	if err != nil {
		v.notifier.Notify(notify.Failure(v.fetchFailure))
		return err
	}
	return nil
}

// Unmount 卸载视图，之后到达的结果会被丢弃
func (v *View) Unmount() { v.store.Close() }

// Records 返回当前存储的全部记录
func (v *View) Records() []lyric.Record { return v.store.Records() }

// Results 按查询参数计算结果
func (v *View) Results(p query.Params) []lyric.Record {
	return query.Apply(v.store.Records(), p)
}

// Artists 返回按歌手分组的结果
func (v *View) Artists(order group.SongOrder) []group.Artist {
	return group.ByArtist(v.store.Records(), order)
}

// Trending 计算热门歌曲、最近热曲和热门歌手
func (v *View) Trending(size int) Trending {
	records := v.store.Records()
	ranked := v.ranker.Rank(records)
	return Trending{
		Trending:       query.Window(ranked, 0, size),
		RecentHits:     query.Window(ranked, size, 6),
		PopularArtists: group.Top(group.ByArtist(records, group.SourceOrder), 6),
	}
}

// Open 返回详情记录，优先使用已加载的数据
func (v *View) Open(ctx context.Context, id int64) (lyric.Record, error) {
	if r, ok := v.store.Get(id); ok {
		return r, nil
	}
	r, err := v.fetcher.FetchByID(ctx, id)
	if err != nil {
		v.notifier.Notify(notify.Failure(msgFetchFailed))
		return lyric.Record{}, err
	}
	return r, nil
}

// Download 下载 PDF，返回保存路径
func (v *View) Download(ctx context.Context, id int64) (string, error) {
	if v.saver == nil {
		return "", errors.New("browse: no saver configured")
	}
	rec := &recordingSaver{next: v.saver}
	name, err := v.fetcher.Download(ctx, id, rec)
	if err != nil {
		v.notifier.Notify(notify.Failure(msgDownloadFailed))
		return "", err
	}
	if v.ledger != nil {
		if err := v.ledger.RecordDownload(id, name, rec.path); err != nil {
			v.logger.Warn("Failed to record download", zap.Int64("id", id), zap.Error(err))
		}
	}
	v.notifier.Notify(notify.Success(msgDownloadOK))
	return rec.path, nil
}

// Submit 校验并提交新歌词，成功后把新记录并入当前列表
func (v *View) Submit(ctx context.Context, req lyric.NewRequest) (lyric.Record, error) {
	if err := req.Validate(); err != nil {
		v.notifier.Notify(notify.Failure(msgMissingFields))
		return lyric.Record{}, err
	}
	created, err := v.fetcher.Create(ctx, req)
	if err != nil {
		v.notifier.Notify(notify.Failure(msgCreateFailed))
		return lyric.Record{}, err
	}
	v.store.Append(created)
	v.notifier.Notify(notify.Success(msgCreateOK))
	return created, nil
}

type recordingSaver struct {
	next saver.Saver
	path string
}

func (r *recordingSaver) Save(name string, body io.Reader) (string, error) {
	p, err := r.next.Save(name, body)
	r.path = p
	return p, err
}
