package query

import (
	"github.com/yleoer/lyricus/pkg/lyric"
)

// Ranker 为热门、推荐等区块给出排名，返回新的切片
type Ranker interface {
	Rank(records []lyric.Record) []lyric.Record
}

// RankerFunc 让普通函数实现 Ranker
type RankerFunc func(records []lyric.Record) []lyric.Record

func (f RankerFunc) Rank(records []lyric.Record) []lyric.Record { return f(records) }

// RecencyRanker 按 id 从新到旧排名，在没有真实热度数据时使用
type RecencyRanker struct{}

func (RecencyRanker) Rank(records []lyric.Record) []lyric.Record {
	return Sort(records, SortRecent, Desc)
}

// Recent 返回最新的 n 条记录
func Recent(records []lyric.Record, n int) []lyric.Record {
	return Window(RecencyRanker{}.Rank(records), 0, n)
}

// Window 返回 [from, from+n) 区间，越界部分被截断
func Window(records []lyric.Record, from, n int) []lyric.Record {
	if from < 0 {
		from = 0
	}
	if from >= len(records) || n <= 0 {
		return []lyric.Record{}
	}
	to := from + n
	if to > len(records) {
		to = len(records)
	}
	return clone(records[from:to])
}
