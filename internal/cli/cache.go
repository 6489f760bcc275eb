package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/cache"
	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		Long: `Remove all cached layouts from the file cache, or from the Redis or
MongoDB cache given with --redis or --mongo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := newCache(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer backend.Close()

			cl, ok := backend.(cache.Clearer)
			if !ok {
				return flerrors.New(flerrors.ErrCodeUnsupported, "cache backend cannot be cleared")
			}
			prog := newProgress(c.Logger)
			if err := cl.Clear(cmd.Context()); err != nil {
				return flerrors.Wrap(flerrors.ErrCodeCache, err, "clear cache")
			}
			prog.done("cleared cache")

			printSuccess(c.out, "Cleared layout cache")
			if fc, ok := backend.(*cache.FileCache); ok {
				printDetail(c.out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.redisURL, "redis", "", "clear the Redis cache at this URL")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo", "", "clear the MongoDB cache at this URI")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}
