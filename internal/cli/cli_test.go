package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/starmap/pkg/cache"
	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/observability"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" svg , png ", []string{"svg", "png"}},
		{",", []string{"svg"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.input, "svg"); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("-10, 2.5,3e1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{-10, 2.5, 30}) {
		t.Errorf("parseFloats = %v", got)
	}

	for _, bad := range []string{"1,2", "1,2,3,4", "1,x,3", ""} {
		if _, err := parseFloats(bad, 3); err == nil {
			t.Errorf("parseFloats(%q) should fail", bad)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "catalog.json", "catalog"},
		{"", "dir/sphere.toml", "dir/sphere"},
		{"out.svg", "catalog.json", "out"},
		{"out.pdf", "catalog.json", "out"},
		{"out", "catalog.json", "out"},
		{"out.map", "catalog.json", "out.map"},
		{"", "https://example.com/maps/inner-sphere.json", "inner-sphere"},
		{"", "https://example.com", "starmap"},
		{"out", "https://example.com/c.toml", "out"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output  string
		base    string
		vizType string
		format  string
		single  bool
		types   int
		want    string
	}{
		{"map.svg", "map", "map", "svg", true, 1, "map.svg"},
		{"", "catalog", "map", "svg", true, 1, "catalog.svg"},
		{"out.svg", "out", "map", "png", false, 1, "out.png"},
		{"", "catalog", "network", "svg", false, 2, "catalog_network.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.base, tt.vizType, tt.format, tt.single, tt.types); got != tt.want {
			t.Errorf("outputPath(%+v) = %q, want %q", tt, got, tt.want)
		}
	}
}

func TestStatsParts(t *testing.T) {
	s := plot.Stats{Visible: 3, NearVisible: 1, PrimaryLinks: 2, DistanceLinks: 1}
	want := []string{"3 visible", "1 near", "3 links"}
	if got := statsParts(s); !reflect.DeepEqual(got, want) {
		t.Errorf("statsParts = %v, want %v", got, want)
	}
	if got := statsParts(plot.Stats{}); len(got) != 0 {
		t.Errorf("empty stats = %v", got)
	}
	if line := statsLine(plot.Stats{}, true); !strings.Contains(line, iconCached) {
		t.Errorf("statsLine should mark cache hits: %q", line)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("clearCache removed %d, want 2", n)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived clearCache")
	}
}

const testCatalog = `{
  "systems": [
    {"name": "Terra", "x": 0, "y": 0, "meta": {"faction": "ComStar", "capital": true}},
    {"name": "New Earth", "x": 20, "y": 10, "meta": {"faction": "ComStar"}},
    {"name": "Far Away", "x": 900, "y": 0}
  ]
}`

// runCLI executes the root command in an isolated environment.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(redisEnv, "")
	defer observability.Reset()

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "sphere.json", testCatalog)
	out := filepath.Join(dir, "map.svg")

	logs, err := runCLI(t, "render", catalog, "-o", out, "--no-cache", "--grid", "--circle", "0,0,25")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, logs)
	}
	if !strings.Contains(logs, "Loaded 3 systems") {
		t.Errorf("missing progress log:\n%s", logs)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	for _, want := range []string{`height="200" width="200"`, ">Terra</text>", `r="25" fill-opacity="0"`, "<polygon"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "Far Away") {
		t.Error("excluded system drawn")
	}
}

// captureStdout runs fn with os.Stdout redirected and returns what was
// written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	fn()
	w.Close()
	return <-done
}

func TestRenderCommandStdout(t *testing.T) {
	catalog := writeFile(t, t.TempDir(), "sphere.json", testCatalog)

	var err error
	out := captureStdout(t, func() {
		_, err = runCLI(t, "render", catalog, "-o", "-", "--no-cache")
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE svg") {
		t.Errorf("stdout should start with the document, got %q", out[:min(len(out), 40)])
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("stdout should end with the document, got %q", out[max(0, len(out)-40):])
	}
	if strings.Count(out, "<svg") != 1 || strings.Contains(out, "Rendered") {
		t.Errorf("stdout carries more than the document:\n%s", out)
	}
}

func TestRenderCommandRemoteCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/sphere.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(testCatalog))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "remote.svg")
	logs, err := runCLI(t, "render", srv.URL+"/maps/sphere.json", "-o", out)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, logs)
	}
	if !strings.Contains(logs, "Loaded 3 systems") {
		t.Errorf("missing progress log:\n%s", logs)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}

	if _, err := runCLI(t, "render", srv.URL+"/maps/missing.json", "-o", out, "--no-cache"); err == nil {
		t.Error("expected error for missing remote catalog")
	}
}

func TestRenderCommandConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "sphere.json", testCatalog)
	cfg := writeFile(t, dir, "starmap.toml", "[options]\nscale = 2\nnames = false\nbogus = 1\n")
	out := filepath.Join(dir, "map.svg")

	logs, err := runCLI(t, "render", catalog, "-o", out, "--no-cache", "--config", cfg, "--width", "100")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, logs)
	}
	if !strings.Contains(logs, "unknown config key") || !strings.Contains(logs, "options.bogus") {
		t.Errorf("unknown key not reported:\n%s", logs)
	}

	data, _ := os.ReadFile(out)
	svg := string(data)
	if !strings.Contains(svg, `height="400" width="200"`) {
		t.Errorf("config scale and flag width not applied:\n%s", svg)
	}
	if strings.Contains(svg, "<text") {
		t.Error("names = false from config should suppress labels")
	}
}

func TestRenderCommandMultipleOutputs(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "sphere.json", testCatalog)

	if logs, err := runCLI(t, "render", catalog, "-t", "map,network", "--no-cache"); err != nil {
		t.Fatalf("render: %v\n%s", err, logs)
	}
	for _, name := range []string{"sphere_map.svg", "sphere_network.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "sphere.json", testCatalog)

	tests := []struct {
		name string
		args []string
	}{
		{"missing catalog", []string{"render", filepath.Join(dir, "none.json"), "--no-cache"}},
		{"bad format", []string{"render", catalog, "-f", "gif", "--no-cache"}},
		{"bad type", []string{"render", catalog, "-t", "tower", "--no-cache"}},
		{"bad rect", []string{"render", catalog, "--rect", "1,2,3", "--no-cache"}},
		{"bad scale", []string{"render", catalog, "--scale", "-1", "--no-cache"}},
		{"zero scale", []string{"render", catalog, "--scale", "0", "--no-cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGridCommand(t *testing.T) {
	if _, err := runCLI(t, "grid", "--rows", "1", "--columns", "2"); err != nil {
		t.Errorf("grid: %v", err)
	}
	if _, err := runCLI(t, "grid", "--hex-height", "0"); err == nil {
		t.Error("zero hex height should fail")
	}
}

func TestFormatPoint(t *testing.T) {
	if got := formatPoint(geom.Pt(-1.5, 30)); got != "-1.50, 30.00" {
		t.Errorf("formatPoint = %q", got)
	}
}
