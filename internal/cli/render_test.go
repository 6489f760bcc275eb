package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
)

func TestResolveRenderOutput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		ro         renderOpts
		wantFormat string
		wantOutput string
	}{
		{"defaults to svg", "wf.json", renderOpts{}, "svg", "wf.svg"},
		{"explicit dot", "wf.json", renderOpts{format: "DOT"}, "dot", "wf.dot"},
		{"dot extension", "wf.json", renderOpts{output: "out.dot"}, "dot", "out.dot"},
		{"format beats extension", "wf.json", renderOpts{output: "out.dot", format: "svg"}, "svg", "out.dot"},
		{"stdin writes stdout", "-", renderOpts{}, "svg", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, output, err := resolveRenderOutput(tt.input, tt.ro)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if format != tt.wantFormat || output != tt.wantOutput {
				t.Errorf("got (%q, %q), want (%q, %q)", format, output, tt.wantFormat, tt.wantOutput)
			}
		})
	}

	if _, _, err := resolveRenderOutput("wf.json", renderOpts{format: "png"}); !flerrors.Is(err, flerrors.ErrCodeInvalidInput) {
		t.Errorf("unknown format err = %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	if got := formatPath(nil); got != "-" {
		t.Errorf("formatPath(nil) = %q", got)
	}
	if got, want := formatPath([]int{1, 2, 4}), "#1 → #2 → #4"; got != want {
		t.Errorf("formatPath = %q, want %q", got, want)
	}
}

func newFlagsCommand(t *testing.T, args ...string) (*cobra.Command, *layoutFlags) {
	t.Helper()
	var f layoutFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, &f
}

func TestLayoutFlagsOptions(t *testing.T) {
	cmd, f := newFlagsCommand(t, "--gap-x", "50", "--fold", "auto", "--refresh")
	opts, err := f.options(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if opts.GapX != 50 || opts.Fold != "auto" || !opts.Refresh {
		t.Errorf("flags not applied: %+v", opts)
	}
	if opts.Placer != "highly-aligned" || opts.Orderer != "sweep" {
		t.Errorf("defaults lost: placer %q orderer %q", opts.Placer, opts.Orderer)
	}
}

func TestLayoutFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte("gap_x = 10.0\ngap_y = 5.0\nplacer = \"simple\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, f := newFlagsCommand(t, "--config", path, "--gap-y", "7")
	opts, err := f.options(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if opts.GapX != 10 || opts.GapY != 7 || opts.Placer != "simple" {
		t.Errorf("got gap_x %v gap_y %v placer %q", opts.GapX, opts.GapY, opts.Placer)
	}
}

func TestLayoutFlagsInvalid(t *testing.T) {
	cmd, f := newFlagsCommand(t, "--placer", "diagonal")
	if _, err := f.options(cmd); !flerrors.Is(err, flerrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}
