package pipeline

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/dag/transform"
	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/groups"
	"github.com/matzehuels/flowlayout/pkg/ordering"
	"github.com/matzehuels/flowlayout/pkg/position"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// Defaults for the selectable algorithms.
const (
	DefaultPlacer  = position.NameHighlyAligned
	DefaultOrderer = ordering.NameSweep
	DefaultAlign   = string(position.AlignCenter)
	DefaultFold    = string(workflow.FoldKeep)
)

// Options contains all configuration of a layout run. It can be loaded
// from a TOML file with [LoadOptionsFile] and is hashed into cache keys
// through its JSON form.
type Options struct {
	Placer  string `json:"placer" toml:"placer"`   // simple, average or highly-aligned
	Orderer string `json:"orderer" toml:"orderer"` // sweep or keep

	GapX           float64 `json:"gap_x" toml:"gap_x"`
	GapY           float64 `json:"gap_y" toml:"gap_y"`
	AdjoinDistance int     `json:"adjoin_distance" toml:"adjoin_distance"`
	Align          string  `json:"align" toml:"align"`
	BaseX          float64 `json:"base_x" toml:"base_x"`
	BaseY          float64 `json:"base_y" toml:"base_y"`

	ExcludeOutliers  bool    `json:"exclude_outliers" toml:"exclude_outliers"`
	OutlierTopN      int     `json:"outlier_top_n" toml:"outlier_top_n"`
	OutlierThreshold float64 `json:"outlier_threshold" toml:"outlier_threshold"`

	SizeAlign bool    `json:"size_align" toml:"size_align"`
	MinWidth  float64 `json:"min_width" toml:"min_width"`
	MaxWidth  float64 `json:"max_width" toml:"max_width"`

	// AnchoredTypes are node types that compaction leaves in place.
	AnchoredTypes []string `json:"anchored_types" toml:"anchored_types"`

	// StackingStrength is [max fed, max producers] for the compaction
	// gate. Empty or [0, 0] disables the gate.
	StackingStrength []int `json:"stacking_strength" toml:"stacking_strength"`

	Fold       string   `json:"fold" toml:"fold"` // keep, auto or unfold
	FoldAlways []string `json:"fold_always" toml:"fold_always"`
	FoldNever  []string `json:"fold_never" toml:"fold_never"`
	Unpin      bool     `json:"unpin" toml:"unpin"`

	Groups groups.Options `json:"groups" toml:"groups"`

	// Refresh skips the cache lookup. The result is still stored.
	Refresh bool `json:"-" toml:"-"`
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	cfg := position.DefaultConfig()
	return Options{
		Placer:           DefaultPlacer,
		Orderer:          DefaultOrderer,
		GapX:             cfg.GapX,
		GapY:             cfg.GapY,
		AdjoinDistance:   cfg.AdjoinDistance,
		Align:            DefaultAlign,
		ExcludeOutliers:  cfg.ExcludeOutliers,
		OutlierTopN:      cfg.OutlierTopN,
		OutlierThreshold: cfg.OutlierThreshold,
		SizeAlign:        cfg.SizeAlign,
		MinWidth:         cfg.MinWidth,
		MaxWidth:         cfg.MaxWidth,
		AnchoredTypes:    slices.Clone(transform.DefaultAnchored),
		Fold:             DefaultFold,
		Groups:           groups.DefaultOptions(),
	}
}

// LoadOptionsFile reads a TOML options file. Keys missing from the file
// keep their default values; unknown keys are rejected.
func LoadOptionsFile(path string) (Options, error) {
	if err := flerrors.ValidatePath(path); err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, flerrors.Wrap(flerrors.ErrCodeFileNotFound, err, "options file %s", path)
		}
		return Options{}, flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, flerrors.New(flerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// SetDefaults fills unset selections. Numeric fields are left alone
// except where zero is never meaningful.
func (o *Options) SetDefaults() {
	if o.Placer == "" {
		o.Placer = DefaultPlacer
	}
	if o.Orderer == "" {
		o.Orderer = DefaultOrderer
	}
	if o.Align == "" {
		o.Align = DefaultAlign
	}
	if o.Fold == "" {
		o.Fold = DefaultFold
	}
	if o.AdjoinDistance == 0 {
		o.AdjoinDistance = position.DefaultAdjoinDistance
	}
	if o.AnchoredTypes == nil {
		o.AnchoredTypes = slices.Clone(transform.DefaultAnchored)
	}
	if o.MinWidth == 0 && o.MaxWidth == 0 {
		o.MinWidth, o.MaxWidth = position.DefaultMinWidth, position.DefaultMaxWidth
	}
	if o.ExcludeOutliers && o.OutlierTopN == 0 && o.OutlierThreshold == 0 {
		o.OutlierTopN, o.OutlierThreshold = position.DefaultOutlierTopN, position.DefaultOutlierThreshold
	}
	if o.Groups == (groups.Options{}) {
		o.Groups = groups.DefaultOptions()
	}
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (o *Options) Validate() error {
	if _, err := position.ByName(o.Placer); err != nil {
		return flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "placer")
	}
	if _, err := ordering.ByName(o.Orderer); err != nil {
		return flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "orderer")
	}
	if _, err := workflow.ParseFoldMode(o.Fold); err != nil {
		return flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "fold")
	}
	if err := o.PositionConfig().Validate(); err != nil {
		return flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "position")
	}
	if n := len(o.StackingStrength); n != 0 && n != 2 {
		return flerrors.New(flerrors.ErrCodeInvalidConfig, "stacking_strength needs two values, got %d", n)
	}
	for _, v := range o.StackingStrength {
		if v < 0 {
			return flerrors.New(flerrors.ErrCodeInvalidConfig, "stacking_strength must not be negative, got %v", o.StackingStrength)
		}
	}
	for _, names := range [][]string{o.AnchoredTypes, o.FoldAlways, o.FoldNever} {
		if err := flerrors.ValidateTypeNames(names); err != nil {
			return err
		}
	}
	g := o.Groups
	switch {
	case g.ContainRatio <= 0 || g.ContainRatio > 1:
		return flerrors.New(flerrors.ErrCodeInvalidConfig, "groups.contain_ratio must be in (0, 1], got %g", g.ContainRatio)
	case g.SameGroupRatio <= 0:
		return flerrors.New(flerrors.ErrCodeInvalidConfig, "groups.same_group_ratio must be positive, got %g", g.SameGroupRatio)
	case g.Padding < 0 || g.HeadingFactor < 0:
		return flerrors.New(flerrors.ErrCodeInvalidConfig, "groups padding and heading must not be negative")
	}
	return nil
}

// ValidateAndSetDefaults applies [Options.SetDefaults] then
// [Options.Validate].
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// PositionConfig returns the position stage configuration.
func (o Options) PositionConfig() position.Config {
	return position.Config{
		GapX:             o.GapX,
		GapY:             o.GapY,
		AdjoinDistance:   o.AdjoinDistance,
		Align:            position.Align(o.Align),
		BaseX:            o.BaseX,
		BaseY:            o.BaseY,
		ExcludeOutliers:  o.ExcludeOutliers,
		OutlierTopN:      o.OutlierTopN,
		OutlierThreshold: o.OutlierThreshold,
		SizeAlign:        o.SizeAlign,
		MinWidth:         o.MinWidth,
		MaxWidth:         o.MaxWidth,
	}
}

// CompactOptions returns the compaction configuration.
func (o Options) CompactOptions() transform.CompactOptions {
	c := transform.CompactOptions{Anchored: o.AnchoredTypes}
	if len(o.StackingStrength) == 2 {
		c.Stacking = transform.Stacking{MaxFed: o.StackingStrength[0], MaxPreds: o.StackingStrength[1]}
	}
	return c
}

// FoldOptions returns the fold configuration.
func (o Options) FoldOptions() workflow.FoldOptions {
	return workflow.FoldOptions{
		Mode:   workflow.FoldMode(o.Fold),
		Always: o.FoldAlways,
		Never:  o.FoldNever,
	}
}

// LayoutKeyOpts returns the cache key options for o.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	data, _ := json.Marshal(o)
	return cache.LayoutKeyOpts{
		Placer:   o.Placer,
		Orderer:  o.Orderer,
		Fold:     o.Fold,
		Settings: cache.Hash(data),
	}
}
