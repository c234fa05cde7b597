package query

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yleoer/lyricus/pkg/lyric"
)

// SortKey 是可选的排序字段
type SortKey string

const (
	SortRelevance SortKey = "relevance" // 保持过滤后的顺序
	SortRecent    SortKey = "recent"    // 按 id
	SortTitle     SortKey = "title"
	SortArtist    SortKey = "artist"
	SortDate      SortKey = "date"
)

// Direction 是排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey 解析命令行传入的排序字段。"oldest" 等价于 recent asc
func ParseSortKey(s string) (SortKey, Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return SortRelevance, Desc, nil
	case "recent", "newest", "id":
		return SortRecent, Desc, nil
	case "oldest":
		return SortRecent, Asc, nil
	case "title", "song":
		return SortTitle, Asc, nil
	case "artist":
		return SortArtist, Asc, nil
	case "date", "release_date":
		return SortDate, Desc, nil
	default:
		return "", "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseDirection 解析排序方向
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Sort 返回排序后的新切片，相等元素保持原有相对顺序
func Sort(records []lyric.Record, key SortKey, dir Direction) []lyric.Record {
	return sortWithLocale(records, key, dir, language.Und)
}

func sortWithLocale(records []lyric.Record, key SortKey, dir Direction, tag language.Tag) []lyric.Record {
	out := clone(records)
	cmp := comparator(key, tag)
	if cmp == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Asc {
			return c < 0
		}
		return c > 0
	})
	return out
}

func comparator(key SortKey, tag language.Tag) func(a, b lyric.Record) int {
	switch key {
	case SortRecent:
		return func(a, b lyric.Record) int { return compareInt(a.ID, b.ID) }
	case SortTitle:
		col := newCollator(tag)
		return func(a, b lyric.Record) int { return col.CompareString(a.SongName, b.SongName) }
	case SortArtist:
		col := newCollator(tag)
		return func(a, b lyric.Record) int { return col.CompareString(a.ArtistName, b.ArtistName) }
	case SortDate:
		return compareDate
	default:
		return nil
	}
}

// newCollator 每次排序新建一个，collate.Collator 不能并发使用
func newCollator(tag language.Tag) *collate.Collator {
	if tag == language.Und {
		tag = language.English
	}
	return collate.New(tag)
}

// compareDate 没有有效日期的记录彼此相等，并排在所有有日期的记录之前
func compareDate(a, b lyric.Record) int {
	ta, okA := a.Released()
	tb, okB := b.Released()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	default:
		return ta.Compare(tb)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
