package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

func noEnv(string) (string, bool) { return "", false }

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestParseRenderArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(renderOptions) bool
	}{
		{"defaults", nil, false, func(o renderOptions) bool {
			return o.output == "widgetkit.png" && o.scale == 0 && !o.expand
		}},
		{"output", []string{"-o", "x.png"}, false, func(o renderOptions) bool { return o.output == "x.png" }},
		{"equals form", []string{"--scale=1.5"}, false, func(o renderOptions) bool { return o.scale == 1.5 }},
		{"clicks", []string{"--click", "1,2", "--click=3, 4"}, false, func(o renderOptions) bool {
			return len(o.clicks) == 2 && o.clicks[1] == graphics.Pt(3, 4)
		}},
		{"background", []string{"--background", "#102030"}, false, func(o renderOptions) bool {
			return o.background == graphics.RGB(0x10, 0x20, 0x30)
		}},
		{"expand", []string{"--expand"}, false, func(o renderOptions) bool { return o.expand }},

		{"missing value", []string{"--theme"}, true, nil},
		{"bad scale", []string{"--scale", "big"}, true, nil},
		{"bad click", []string{"--click", "1"}, true, nil},
		{"bad color", []string{"--background", "blue"}, true, nil},
		{"unknown flag", []string{"--fast"}, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseRenderArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRenderArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(opts) {
				t.Errorf("parseRenderArgs(%q) = %+v", tt.args, opts)
			}
		})
	}
}

func TestRenderScene(t *testing.T) {
	opts, err := parseRenderArgs([]string{"--background", "#102030"})
	if err != nil {
		t.Fatal(err)
	}
	cv, err := renderScene(opts, noEnv)
	if err != nil {
		t.Fatalf("renderScene: %v", err)
	}
	size := cv.Size()
	if size.W <= 0 || size.H <= 0 {
		t.Fatalf("empty canvas %v", size)
	}
	if got := cv.At(0, 0); got != graphics.RGB(0x10, 0x20, 0x30) {
		t.Errorf("margin pixel = %v, want the background", got)
	}
}

func TestRenderScene_Scale(t *testing.T) {
	one, err := renderScene(renderOptions{scale: 1}, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	two, err := renderScene(renderOptions{scale: 2}, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if two.Size().W <= one.Size().W || two.Size().H <= one.Size().H {
		t.Errorf("scale 2 size %v not larger than %v", two.Size(), one.Size())
	}

	env := func(k string) (string, bool) {
		if k == "WIDGETKIT_HIGHDPI" {
			return "2", true
		}
		return "", false
	}
	fromEnv, err := renderScene(renderOptions{}, env)
	if err != nil {
		t.Fatal(err)
	}
	if fromEnv.Size() != two.Size() {
		t.Errorf("WIDGETKIT_HIGHDPI=2 size %v, want %v", fromEnv.Size(), two.Size())
	}
}

func TestRenderScene_Interactions(t *testing.T) {
	opts := renderOptions{expand: true, clicks: []graphics.Point{{X: 10, Y: 10}, {X: 9999, Y: 9999}}}
	if _, err := renderScene(opts, noEnv); err != nil {
		t.Fatalf("renderScene: %v", err)
	}
}

func TestRunRender(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "scene.png")

	if err := run([]string{"render", "-o", path}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Errorf("output = %q", out.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("empty image")
	}
}

func TestCheckTheme(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(`
version: v1.0.0
theme:
  button:
    normal: {color: "#c0c0c0"}
    settings: ["FontSize=14"]
`), 0o644); err != nil {
		t.Fatal(err)
	}
	problems, err := checkTheme(good)
	if err != nil {
		t.Fatalf("checkTheme: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("problems = %q, want none", problems)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(`
version: v1.0.0
theme:
  slider: {}
  label:
    settings: ["FontColorSelect=#ffffff"]
`), 0o644); err != nil {
		t.Fatal(err)
	}
	problems, err = checkTheme(bad)
	if err != nil {
		t.Fatalf("checkTheme: %v", err)
	}
	if len(problems) != 2 {
		t.Errorf("problems = %q, want 2", problems)
	}
	if err := runTheme([]string{bad}); err == nil {
		t.Error("runTheme accepted a theme with rejected entries")
	}

	future := filepath.Join(dir, "future.yaml")
	if err := os.WriteFile(future, []byte("version: v2.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := checkTheme(future); err == nil {
		t.Error("checkTheme accepted version v2")
	}
}

func TestRun(t *testing.T) {
	out := captureStdout(t)

	if err := run([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "widgetkit version "+Version) {
		t.Errorf("version output = %q", out.String())
	}

	out.Reset()
	if err := run(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"render", "theme"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help does not list %q", name)
		}
	}

	if err := run([]string{"explode"}); err == nil {
		t.Error("unknown command accepted")
	}
	if err := run([]string{"theme"}); err == nil {
		t.Error("theme without a file accepted")
	}
}
