package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// columnsCommand creates the columns command.
func (c *CLI) columnsCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "columns [workflow.json]",
		Short: "Print the column assignment of a workflow",
		Long: `Print the column assignment of a workflow without writing it.

Each row is one column, left to right, with its x offset, width and nodes
from top to bottom. The longest chain of nodes is listed below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			res, err := c.layout(cmd.Context(), args[0], opts, &flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, columnsTable(res))
			printKeyValue(c.out, "main path", formatPath(res.Stats.MainPath))
			printKeyValue(c.out, "crossings", strconv.Itoa(res.Stats.Crossings))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// columnsTable renders one row per column.
func columnsTable(res *pipeline.Result) string {
	types := make(map[int]string, len(res.Document.Nodes))
	for _, n := range res.Document.Nodes {
		types[n.ID] = n.Type
	}

	rows := make([][]string, len(res.Columns))
	for i, col := range res.Columns {
		nodes := make([]string, len(col))
		for j, id := range col {
			nodes[j] = fmt.Sprintf("#%d %s", id, types[id])
		}
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.FormatFloat(res.Layout.ColumnX[i], 'f', 0, 64),
			strconv.FormatFloat(res.Layout.ColumnWidth[i], 'f', 0, 64),
			strings.Join(nodes, "\n"),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		BorderRow(true).
		Headers("col", "x", "width", "nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(StyleTitle)
			}
			if col < 3 {
				return s.Inherit(StyleNumber).Align(lipgloss.Right)
			}
			return s
		}).
		String()
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return "-"
	}
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, " "+iconArrow+" ")
}
