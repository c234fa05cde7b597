package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yleoer/lyricus/pkg/database"
	"github.com/yleoer/lyricus/pkg/lyric"
	"github.com/yleoer/lyricus/pkg/notify"
	"github.com/yleoer/lyricus/pkg/scanner"
)

type recordingCreator struct {
	mu      sync.Mutex
	nextID  int64
	created []lyric.NewRequest
}

func (c *recordingCreator) Create(_ context.Context, req lyric.NewRequest) (lyric.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.created = append(c.created, req)
	return lyric.Record{ID: c.nextID, SongName: req.SongName, ArtistName: req.ArtistName, Lyrics: req.Lyrics}, nil
}

func (c *recordingCreator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.created)
}

type fixture struct {
	dir     string
	ledger  database.Ledger
	creator *recordingCreator
	notices *notify.Channel
	sched   *ImportScheduler
}

func newFixture(t *testing.T, ctx context.Context) *fixture {
	t.Helper()
	dir := t.TempDir()
	ledger, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	f := &fixture{dir: dir, ledger: ledger, creator: &recordingCreator{}, notices: notify.NewChannel(16)}
	f.sched = NewImportScheduler(ctx,
		Options{CheckInterval: 10 * time.Millisecond, QuietDuration: 0, MaxWait: time.Second},
		ledger, scanner.NewLyricScanner(nil, nil), f.creator, f.notices, nil)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitialScan_ImportsValidSubmissions(t *testing.T) {
	f := newFixture(t, context.Background())
	good := f.write(t, "Queen - Bohemian Rhapsody.txt", "Is this the real life?\nIs this just fantasy?")
	bad := f.write(t, "Untitled.txt", "la la la")
	f.write(t, "cover.jpg", "not lyrics")

	f.sched.InitialScan(f.dir)
	f.sched.Wait()

	require.Equal(t, 1, f.creator.count())
	assert.Equal(t, "Bohemian Rhapsody", f.creator.created[0].SongName)
	assert.Equal(t, "Queen", f.creator.created[0].ArtistName)

	ok, err := f.ledger.IsImported(good)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.ledger.IsImported(bad)
	require.NoError(t, err)
	assert.False(t, ok)

	var got []notify.Notice
	for len(f.notices.C()) > 0 {
		got = append(got, <-f.notices.C())
	}
	assert.ElementsMatch(t, []notify.Notice{
		notify.Success("Lyrics added successfully!"),
		notify.Failure("Please fill in all required fields: Untitled.txt"),
	}, got)
}

func TestInitialScan_SkipsImported(t *testing.T) {
	f := newFixture(t, context.Background())
	path := f.write(t, "A - B.txt", "words")
	require.NoError(t, f.ledger.MarkImported(path, 1))

	f.sched.InitialScan(f.dir)
	f.sched.Wait()
	assert.Equal(t, 0, f.creator.count())
}

func TestTriggerScan_Debounces(t *testing.T) {
	f := newFixture(t, context.Background())
	path := f.write(t, "A - B.txt", "words")

	for i := 0; i < 3; i++ {
		f.sched.TriggerScan(path)
	}
	assert.LessOrEqual(t, f.sched.Pending(), 1)
	f.sched.Wait()

	assert.Equal(t, 1, f.creator.count())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestTriggerScan_RemovedFile(t *testing.T) {
	f := newFixture(t, context.Background())
	path := f.write(t, "A - B.txt", "words")
	f.sched.TriggerScan(path)
	require.NoError(t, os.Remove(path))
	f.sched.Wait()
	assert.Equal(t, 0, f.creator.count())
}

func TestTriggerScan_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(t, ctx)
	path := f.write(t, "A - B.txt", "words")
	cancel()

	f.sched.TriggerScan(path)
	f.sched.Wait()
	assert.Equal(t, 0, f.creator.count())
}
