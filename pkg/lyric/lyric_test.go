package lyric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     NewRequest
		wantErr bool
	}{
		{name: "complete", req: NewRequest{SongName: "a", ArtistName: "b", Lyrics: "c"}},
		{name: "date optional", req: NewRequest{SongName: "a", ArtistName: "b", Lyrics: "c", ReleaseDate: ""}},
		{name: "missing song", req: NewRequest{ArtistName: "b", Lyrics: "c"}, wantErr: true},
		{name: "blank artist", req: NewRequest{SongName: "a", ArtistName: "  ", Lyrics: "c"}, wantErr: true},
		{name: "missing lyrics", req: NewRequest{SongName: "a", ArtistName: "b"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingFields)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecordJSON(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(
		`{"id":3,"song_name":"S","artist_name":"A","release_date":"2021-06-01T00:00:00.000Z","lyrics":"l1\nl2"}`), &r))
	assert.Equal(t, int64(3), r.ID)
	assert.Equal(t, []string{"l1", "l2"}, r.Lines())
	assert.Equal(t, "Jun 1, 2021", r.FormattedDate())
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2020-02-29", "2020-02-29T10:00:00Z", "2020-02-29T10:00:00", "2020-02-29T10:00:00.123+08:00"} {
		d, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, 2020, d.Year())
	}
	for _, s := range []string{"", "  ", "29.02.2020", "yesterday"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}

func TestFormattedDate_Missing(t *testing.T) {
	assert.Empty(t, Record{}.FormattedDate())
	assert.Nil(t, Record{}.Lines())
}

func TestExcerpt(t *testing.T) {
	r := Record{Lyrics: "你好世界 hello"}
	assert.Equal(t, "你好...", r.Excerpt(2))
	assert.Equal(t, r.Lyrics, r.Excerpt(100))
	assert.Equal(t, r.Lyrics, r.Excerpt(0))
}
