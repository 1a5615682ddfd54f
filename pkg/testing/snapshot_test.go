package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

func recordBox(c graphics.Color, w int) *Snapshot {
	rec := NewRecorder()
	rec.SetDrawColor(c)
	rec.FillRect(graphics.Rect{X: 1, Y: 2, W: w, H: 10})
	rec.DrawLine(0, 0, w, 0)
	return rec.Snapshot()
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := recordBox(graphics.RGB(255, 0, 0), 50)
	b := recordBox(graphics.RGB(255, 0, 0), 50)

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := recordBox(graphics.RGB(255, 0, 0), 50)
	b := recordBox(graphics.RGB(0, 255, 0), 100)

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	snap := recordBox(graphics.RGB(10, 20, 30), 80)

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "box.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// Integers come back from JSON as floats; the comparison must still pass.
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("WIDGETKIT_UPDATE_SNAPSHOTS", "")
	snap := recordBox(graphics.ColorBlack, 50)

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("WIDGETKIT_UPDATE_SNAPSHOTS", "")
	first := recordBox(graphics.RGB(255, 0, 0), 50)

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	second := recordBox(graphics.RGB(0, 0, 255), 999)

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := recordBox(graphics.ColorWhite, 60)

	dir := t.TempDir()
	path := filepath.Join(dir, "update.snapshot.json")

	t.Setenv("WIDGETKIT_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
