package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

const chainWorkflow = `{
  "nodes": [
    {"id": 3, "type": "SaveImage", "pos": [0, 0], "size": [200, 100]},
    {"id": 1, "type": "Loader", "pos": [0, 0], "size": [200, 100]},
    {"id": 2, "type": "Sampler", "pos": [0, 0], "size": [200, 100]}
  ],
  "links": [
    [1, 1, 0, 2, 0, "MODEL"],
    [2, 2, 0, 3, 0, "IMAGE"]
  ]
}`

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeWorkflow(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.json")
	if err := os.WriteFile(path, []byte(chainWorkflow), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommand(t *testing.T) {
	in := writeWorkflow(t)
	out, err := run(t, "layout", in, "--no-cache")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(out, "3 nodes") || !strings.Contains(out, "3 columns") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	doc, err := pipeline.LoadDocument(strings.TrimSuffix(in, ".json") + ".layout.json")
	if err != nil {
		t.Fatal(err)
	}
	x := make(map[int]float64)
	for _, n := range doc.Nodes {
		x[n.ID] = n.Pos.X
	}
	if !(x[1] < x[2] && x[2] < x[3]) {
		t.Errorf("chain not laid out left to right: %v", x)
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	out, err := run(t, "layout", writeWorkflow(t), "--no-cache", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"nodes"`) {
		t.Errorf("stdout is not a workflow document:\n%s", out)
	}
}

func TestColumnsCommand(t *testing.T) {
	out, err := run(t, "columns", writeWorkflow(t), "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"#1 Loader", "#2 Sampler", "#3 SaveImage", "#1 → #2 → #3"} {
		if !strings.Contains(out, want) {
			t.Errorf("columns output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandDOT(t *testing.T) {
	in := writeWorkflow(t)
	dotPath := filepath.Join(t.TempDir(), "chain.dot")
	if _, err := run(t, "render", in, "--no-cache", "-o", dotPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") || !strings.Contains(string(data), "1 -> 2;") {
		t.Errorf("unexpected DOT:\n%s", data)
	}
}

func TestLayoutCommandMissingFile(t *testing.T) {
	if _, err := run(t, "layout", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	in := writeWorkflow(t)
	if _, err := run(t, "layout", in); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared layout cache") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
