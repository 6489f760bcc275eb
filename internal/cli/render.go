package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/render/dot"
)

// Render output formats.
const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderOpts holds the render-specific flags.
type renderOpts struct {
	output   string
	format   string // svg or dot; inferred from output when empty
	detailed bool   // types, columns and ports in labels
	pinned   bool   // draw nodes at their computed positions
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [workflow.json]",
		Short: "Draw the column layout of a workflow with Graphviz",
		Long: `Draw the column layout of a workflow with Graphviz.

By default Graphviz ranks the columns itself, which gives a compact
overview of the layering and ordering. With --pinned every node is drawn
where the layout placed it instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			format, output, err := resolveRenderOutput(args[0], ro)
			if err != nil {
				return err
			}

			res, err := c.layout(cmd.Context(), args[0], opts, &flags)
			if err != nil {
				return err
			}

			dopts := dot.Options{Detailed: ro.detailed, Pinned: ro.pinned}
			var data []byte
			if format == formatDOT {
				data = []byte(res.DOT(dopts))
			} else {
				data, err = pipeline.RenderSVG(cmd.Context(), res, dopts)
				if err != nil {
					return err
				}
			}

			if output == "-" {
				_, err := c.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return flerrors.Wrap(flerrors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess(c.out, "Rendered %s", strings.ToUpper(format))
			printFile(c.out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().StringVarP(&ro.format, "format", "f", "", "output format: svg, dot (default: from output extension)")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "show node types, columns and ports")
	cmd.Flags().BoolVar(&ro.pinned, "pinned", false, "draw nodes at their computed positions")
	flags.register(cmd)

	return cmd
}

// resolveRenderOutput picks the format and output path. An explicit format
// wins; otherwise the output extension decides, defaulting to SVG.
func resolveRenderOutput(input string, ro renderOpts) (format, output string, err error) {
	format = strings.ToLower(ro.format)
	if format == "" {
		format = formatSVG
		if strings.EqualFold(filepath.Ext(ro.output), "."+formatDOT) {
			format = formatDOT
		}
	}
	if format != formatSVG && format != formatDOT {
		return "", "", flerrors.New(flerrors.ErrCodeInvalidInput, "unknown format %q (want svg or dot)", ro.format)
	}

	output = ro.output
	if output == "" {
		if input == "-" {
			output = "-"
		} else {
			output = fmt.Sprintf("%s.%s", strings.TrimSuffix(input, filepath.Ext(input)), format)
		}
	}
	return format, output, nil
}
