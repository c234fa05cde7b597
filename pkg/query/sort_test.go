package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/yleoer/lyricus/pkg/lyric"
)

func TestSort_Recent(t *testing.T) {
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(Sort(sample(), SortRecent, Desc)))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(Sort(sample(), SortRecent, Asc)))
}

func TestSort_TitleIsCaseInsensitiveAndStable(t *testing.T) {
	asc := Sort(sample(), SortTitle, Asc)
	// 两首 "Hello" 保持输入顺序
	assert.Equal(t, []int64{4, 2, 1, 5, 3}, ids(asc))

	desc := Sort(sample(), SortTitle, Desc)
	assert.Equal(t, []int64{3, 1, 5, 2, 4}, ids(desc))
}

func TestSort_DistinctKeysReverse(t *testing.T) {
	records := []lyric.Record{
		{ID: 1, SongName: "Charlie"},
		{ID: 2, SongName: "alpha"},
		{ID: 3, SongName: "Bravo"},
	}
	asc := ids(Sort(records, SortTitle, Asc))
	desc := ids(Sort(records, SortTitle, Desc))
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSort_Artist(t *testing.T) {
	assert.Equal(t, []int64{1, 3, 4, 5, 2}, ids(Sort(sample(), SortArtist, Asc)))
}

func TestSort_Date(t *testing.T) {
	// 3 没有日期，排在最前
	assert.Equal(t, []int64{3, 2, 5, 1, 4}, ids(Sort(sample(), SortDate, Asc)))
	assert.Equal(t, []int64{4, 1, 5, 2, 3}, ids(Sort(sample(), SortDate, Desc)))
}

func TestSort_UndatedRecordsKeepOrder(t *testing.T) {
	records := []lyric.Record{
		{ID: 1, ReleaseDate: ""},
		{ID: 2, ReleaseDate: "not a date"},
		{ID: 3, ReleaseDate: "2000-01-01"},
	}
	assert.Equal(t, []int64{1, 2, 3}, ids(Sort(records, SortDate, Asc)))
	assert.Equal(t, []int64{3, 1, 2}, ids(Sort(records, SortDate, Desc)))
}

func TestSort_RelevanceKeepsOrder(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(Sort(sample(), SortRelevance, Desc)))
}

func TestSort_Locale(t *testing.T) {
	records := []lyric.Record{
		{ID: 1, SongName: "Zebra"},
		{ID: 2, SongName: "Äpfel"},
		{ID: 3, SongName: "Apfel"},
	}
	got := sortWithLocale(records, SortTitle, Asc, language.German)
	assert.Equal(t, int64(1), got[2].ID)
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		key     SortKey
		dir     Direction
		wantErr bool
	}{
		{in: "", key: SortRelevance, dir: Desc},
		{in: "recent", key: SortRecent, dir: Desc},
		{in: "oldest", key: SortRecent, dir: Asc},
		{in: "Title", key: SortTitle, dir: Asc},
		{in: "artist", key: SortArtist, dir: Asc},
		{in: "date", key: SortDate, dir: Desc},
		{in: "popularity", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, dir, err := ParseSortKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.dir, dir)
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
