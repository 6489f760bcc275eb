package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [workflow.json]",
		Short: "Arrange a workflow into columns and write the result",
		Long: `Arrange a workflow into columns and write the result.

Nodes are layered so every link points right, ordered within columns to
reduce crossings, and placed so each node lines up with the nodes that feed
it. Group boxes are refitted around their members, or moved to a shelf left
of the canvas when their members were scattered.

Use "-" to read the workflow from stdin. Results are cached, so re-running
an unchanged workflow with unchanged options is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, opts, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, stdout for -)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, flags *layoutFlags) error {
	res, err := c.layout(ctx, input, opts, flags)
	if err != nil {
		return err
	}

	if output == "-" || (output == "" && input == "-") {
		return workflow.WriteJSON(res.Document, c.out)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := pipeline.SaveDocument(res.Document, output); err != nil {
		return err
	}

	printSuccess(c.out, "Layout complete")
	printFile(c.out, output)
	printStats(c.out, res.Stats.NodeCount, len(res.Columns), res.CacheHit)
	if res.Stats.Crossings > 0 {
		printDetail(c.out, "%d crossing links", res.Stats.Crossings)
	}
	if res.Stats.Shelved > 0 {
		printWarning(c.out, "%d group(s) moved to the shelf", res.Stats.Shelved)
	}
	return nil
}

// layout loads input and runs the pipeline on it with a spinner, caching
// and optional metrics.
func (c *CLI) layout(ctx context.Context, input string, opts pipeline.Options, flags *layoutFlags) (*pipeline.Result, error) {
	doc, err := loadDocument(input)
	if err != nil {
		return nil, err
	}
	if dangling := doc.DanglingLinks(); len(dangling) > 0 {
		c.Logger.Warn("ignoring links to missing nodes", "count", len(dangling))
	}

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	flush := c.startMetrics(flags.metricsFile)
	defer flush()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Laying out %d nodes...", len(doc.Nodes)))
	spinner.Start()
	res, err := runner.Layout(ctx, doc, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	for _, st := range res.Stats.Stages {
		c.Logger.Debug("stage", "name", st.Stage, "duration", st.Duration)
	}
	return res, nil
}

func loadDocument(input string) (*workflow.Document, error) {
	if input == "-" {
		return pipeline.ReadDocument(os.Stdin)
	}
	return pipeline.LoadDocument(input)
}
