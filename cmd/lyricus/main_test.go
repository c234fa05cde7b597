package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yleoer/lyricus/pkg/lyric"
)

func newMockAPI(t *testing.T) (*httptest.Server, *[]lyric.NewRequest) {
	t.Helper()
	records := []lyric.Record{
		{ID: 1, SongName: "Hello", ArtistName: "Adele", ReleaseDate: "2015-10-23", Lyrics: "Hello, it's me"},
		{ID: 2, SongName: "Bohemian Rhapsody", ArtistName: "Queen", ReleaseDate: "1975-10-31", Lyrics: "Is this the real life?"},
		{ID: 3, SongName: "Someone Like You", ArtistName: "Adele", Lyrics: "I heard that you're settled down"},
	}
	var created []lyric.NewRequest

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/lyrics", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(records)
	})
	mux.HandleFunc("GET /api/lyrics/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, rec := range records {
			if strconv.FormatInt(rec.ID, 10) == r.PathValue("id") {
				json.NewEncoder(w).Encode(rec)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /api/lyrics", func(w http.ResponseWriter, r *http.Request) {
		var req lyric.NewRequest
		json.NewDecoder(r.Body).Decode(&req)
		created = append(created, req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(lyric.Record{ID: 10, SongName: req.SongName, ArtistName: req.ArtistName,
			ReleaseDate: req.ReleaseDate, Lyrics: req.Lyrics})
	})
	mux.HandleFunc("GET /api/lyrics/download/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "%PDF-1.4")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &created
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func runMain(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(args, &out, &errOut)
	return code, errOut.String()
}

func setEnv(t *testing.T, apiURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LYRICUS_API_URL", apiURL)
	t.Setenv("DOWNLOAD_DIR", filepath.Join(dir, "downloads"))
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("IMPORT_DIR", filepath.Join(dir, "inbox"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "")
	return dir
}

func TestListCommand(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/api/lyrics")

	out, _, err := run(t, "list", "--artist", "Adele", "--sort", "title", "--json")
	require.NoError(t, err)

	var got []lyric.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Hello", got[0].SongName)
	assert.Equal(t, "Someone Like You", got[1].SongName)

	out, _, err = run(t, "search", "-q", "real life")
	require.NoError(t, err)
	assert.Contains(t, out, "Bohemian Rhapsody")
	assert.Contains(t, out, "1 songs found")
}

func TestListCommand_BadSort(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/api/lyrics")

	_, _, err := run(t, "list", "--sort", "popularity")
	assert.Error(t, err)
}

func TestListCommand_ServerDown(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/missing")

	_, errOut, err := run(t, "list")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: Failed to fetch lyrics")
}

func TestArtistsCommand(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/api/lyrics")

	out, _, err := run(t, "artists", "--json")
	require.NoError(t, err)
	var got []artistJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Adele", got[0].Name)
	assert.Equal(t, 2, got[0].SongCount)
	assert.Equal(t, "A", got[0].Initials)
}

func TestShowCommand(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/api/lyrics")

	out, _, err := run(t, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Bohemian Rhapsody")
	assert.Contains(t, out, "Released on Oct 31, 1975")

	_, _, err = run(t, "show", "abc")
	assert.Error(t, err)
}

func TestAddCommand(t *testing.T) {
	srv, created := newMockAPI(t)
	dir := setEnv(t, srv.URL+"/api/lyrics")

	file := filepath.Join(dir, "Muse - Uprising.txt")
	require.NoError(t, os.WriteFile(file, []byte("Paranoia is in bloom"), 0644))

	out, errOut, err := run(t, "add", "--file", file, "--date", "2009-09-07")
	require.NoError(t, err)
	assert.Contains(t, out, "Uprising")
	assert.Contains(t, errOut, "Success: Lyrics added successfully!")
	require.Len(t, *created, 1)
	assert.Equal(t, lyric.NewRequest{SongName: "Uprising", ArtistName: "Muse", ReleaseDate: "2009-09-07",
		Lyrics: "Paranoia is in bloom"}, (*created)[0])

	_, errOut, err = run(t, "add", "--song", "Only a title")
	require.Error(t, err)
	assert.Contains(t, errOut, "Please fill in all required fields")
	assert.Len(t, *created, 1)
}

func TestDownloadCommand(t *testing.T) {
	srv, _ := newMockAPI(t)
	dir := setEnv(t, srv.URL+"/api/lyrics")

	out, _, err := run(t, "download", "42")
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.Equal(t, "lyric-42.pdf", filepath.Base(path))
	assert.FileExists(t, filepath.Join(dir, "downloads", "lyric-42.pdf"))

	// 第二次命中下载记录，直接返回已有文件
	out, errOut, err := run(t, "download", "42")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
	assert.NotContains(t, errOut, "Success")
}

func TestExecute_ReportsErrors(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/api/lyrics")

	code, errOut := runMain(t, "list", "--sort", "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `Error: unknown sort key "bogus"`)

	code, errOut = runMain(t, "show", "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `invalid lyric id "abc"`)

	code, _ = runMain(t, "list", "--json")
	assert.Equal(t, 0, code)
}

func TestExecute_LabelsTransportFailures(t *testing.T) {
	srv, _ := newMockAPI(t)
	setEnv(t, srv.URL+"/missing")

	code, errOut := runMain(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: Failed to fetch lyrics")
	assert.Contains(t, errOut, "Error: HTTP 404:")

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	setEnv(t, url)

	code, errOut = runMain(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: network failure:")
}
