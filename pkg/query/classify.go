package query

import (
	"strings"

	"github.com/yleoer/lyricus/pkg/lyric"
)

// Classifier 判断一条记录是否属于某个分类。记录本身没有分类数据，
// 实现方可以接入真正的分类来源
type Classifier interface {
	Matches(r lyric.Record, genre string) bool
}

// KeywordClassifier 在歌名或歌手名中查找分类关键字
type KeywordClassifier struct{}

func (KeywordClassifier) Matches(r lyric.Record, genre string) bool {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.SongName), g) ||
		strings.Contains(strings.ToLower(r.ArtistName), g)
}

// Genres 是界面上提供的分类选项
var Genres = []string{"Pop", "Rock", "Hip Hop", "Electronic", "Classical", "Jazz", "Country", "R&B"}
