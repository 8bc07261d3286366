package file

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
	"github.com/couchcryptid/isoweather/internal/weather/synth"
)

var site = weather.Header{Location: "Golden", StationID: "724666", Latitude: 39.74, Longitude: -105.18, TimeZone: -7}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeEPW(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "golden.epw")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, synth.Write(f, synth.Options{Header: site}))
	require.NoError(t, f.Close())
	return path
}

func testDocument(t *testing.T) report.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, synth.Write(&buf, synth.Options{Header: site}))
	s, err := weather.Parse(&buf)
	require.NoError(t, err)
	r, err := solar.Compute(s, calendar.Standard())
	require.NoError(t, err)
	return report.Document{
		Report:      r,
		Source:      report.Source{Path: "golden.epw", Rows: s.Rows()},
		GeneratedAt: time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestExtractor_Extract(t *testing.T) {
	path := writeEPW(t, t.TempDir())

	in, err := NewExtractor(path, discardLogger()).Extract(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, in.Path)
	require.NotNil(t, in.Series)
	assert.Equal(t, site, in.Series.Header())
	assert.Equal(t, weather.HoursPerYear, in.Series.Rows())
}

func TestExtractor_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.epw")

	in, err := NewExtractor(path, discardLogger()).Extract(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, in.Series)
}

func TestExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExtractor("unused.epw", discardLogger()).Extract(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriter_File(t *testing.T) {
	doc := testDocument(t)
	path := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, NewWriter(path, report.FormatText, nil).Load(context.Background(), doc))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, report.WriteText(&want, doc.Report))
	assert.Equal(t, want.String(), string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestWriter_ReplacesExistingFile(t *testing.T) {
	doc := testDocument(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, NewWriter(path, report.FormatCSV, nil).Load(context.Background(), doc))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "month,name,"))

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriter_Stdout(t *testing.T) {
	doc := testDocument(t)
	var out bytes.Buffer
	w := NewWriter(config.Stdout, report.FormatJSON, &out)

	require.NoError(t, w.Load(context.Background(), doc))
	assert.Contains(t, out.String(), `"station_id": "724666"`)
	assert.Contains(t, out.String(), `"generated_at": "2026-01-02T03:04:05Z"`)
}

func TestWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	err := NewWriter(path, report.FormatText, nil).Load(context.Background(), testDocument(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create report file")
}
