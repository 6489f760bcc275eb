package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// layoutFlags are the flags shared by every command that runs a layout.
type layoutFlags struct {
	config string

	placer    string
	orderer   string
	gapX      float64
	gapY      float64
	align     string
	fold      string
	unpin     bool
	sizeAlign bool
	anchored  []string
	stacking  []int

	noCache     bool
	refresh     bool
	redisURL    string
	mongoURI    string
	metricsFile string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	def := pipeline.DefaultOptions()
	fs := cmd.Flags()

	fs.StringVarP(&f.config, "config", "c", "", "TOML options file")

	fs.StringVar(&f.placer, "placer", def.Placer, "placement strategy: simple, average, highly-aligned")
	fs.StringVar(&f.orderer, "orderer", def.Orderer, "column ordering: sweep, keep")
	fs.Float64Var(&f.gapX, "gap-x", def.GapX, "horizontal gap between columns")
	fs.Float64Var(&f.gapY, "gap-y", def.GapY, "vertical gap between nodes")
	fs.StringVar(&f.align, "align", def.Align, "column alignment: top, center, bottom")
	fs.StringVar(&f.fold, "fold", def.Fold, "collapse mode: keep, auto, unfold")
	fs.BoolVar(&f.unpin, "unpin", def.Unpin, "remove pins so pinned nodes move too")
	fs.BoolVar(&f.sizeAlign, "size-align", def.SizeAlign, "give every node in a column the column width")
	fs.StringSliceVar(&f.anchored, "anchored", def.AnchoredTypes, "node types that compaction never moves")
	fs.IntSliceVar(&f.stacking, "stacking", nil, "compaction gate as max-fed,max-producers (0,0 disables)")

	fs.BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if a cached layout exists")
	fs.StringVar(&f.redisURL, "redis", "", "use the Redis cache at this URL")
	fs.StringVar(&f.mongoURI, "mongo", "", "use the MongoDB cache at this URI")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	cmd.MarkFlagsMutuallyExclusive("no-cache", "redis", "mongo")
	_ = cmd.MarkFlagFilename("config", "toml")
}

// options resolves the layout options: defaults, then the config file,
// then flags the user set explicitly.
func (f *layoutFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.config != "" {
		loaded, err := pipeline.LoadOptionsFile(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("placer") {
		opts.Placer = f.placer
	}
	if fs.Changed("orderer") {
		opts.Orderer = f.orderer
	}
	if fs.Changed("gap-x") {
		opts.GapX = f.gapX
	}
	if fs.Changed("gap-y") {
		opts.GapY = f.gapY
	}
	if fs.Changed("align") {
		opts.Align = f.align
	}
	if fs.Changed("fold") {
		opts.Fold = f.fold
	}
	if fs.Changed("unpin") {
		opts.Unpin = f.unpin
	}
	if fs.Changed("size-align") {
		opts.SizeAlign = f.sizeAlign
	}
	if fs.Changed("anchored") {
		opts.AnchoredTypes = f.anchored
	}
	if fs.Changed("stacking") {
		opts.StackingStrength = f.stacking
	}
	opts.Refresh = f.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
